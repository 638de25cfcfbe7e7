package router

import (
	"fmt"
	"io"
	"path"
	"strings"

	"minihttp/internal/protocol"
)

// Dispatcher はリクエストをマウントまたはルートに振り分ける
type Dispatcher struct {
	routes    Registry
	mounts    MountTable
	sniffMIME bool
}

// Option は Dispatcher の設定
type Option func(*Dispatcher)

// WithMIMESniffing は拡張子表にないファイルの内容からMIMEタイプを推定する
func WithMIMESniffing(enabled bool) Option {
	return func(d *Dispatcher) {
		d.sniffMIME = enabled
	}
}

// NewDispatcher は新しい Dispatcher を作成する
func NewDispatcher(routes Registry, mounts MountTable, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		routes: routes,
		mounts: mounts,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// LookupPath は検索に使うパスを返す
// 最後のセグメントに "." を含み "/" で終わらないパスはファイルとみなし、
// その親ディレクトリで検索する。
//
//	/index.html      -> /        (file)
//	/static/app.css  -> /static  (file)
//	/static/         -> /static/
func LookupPath(p string) (lookup string, isFile bool) {
	if strings.HasSuffix(p, "/") {
		return p, false
	}

	last := p[strings.LastIndex(p, "/")+1:]
	if !strings.Contains(last, ".") {
		return p, false
	}
	return path.Dir(p), true
}

// Dispatch はリクエストを処理してレスポンスを返す
// body はヘッダーブロックの直後から読める状態のストリーム
func (d *Dispatcher) Dispatch(req *protocol.Request, body io.Reader) (*protocol.Response, error) {
	lookup, isFile := LookupPath(req.Path)
	res := protocol.NewResponse()

	// 静的アセット
	if m, ok := d.mounts.Match(lookup); ok {
		if err := protocol.DrainBody(body, req.Headers); err != nil {
			return nil, err
		}
		return ServeAsset(m, req, res, isFile, d.sniffMIME)
	}

	// 登録済みのルート
	h, found := d.routes.Lookup(lookup, req.Method)
	if h == nil {
		if err := protocol.DrainBody(body, req.Headers); err != nil {
			return nil, err
		}
		if found {
			res.Status = protocol.StatusMethodNotAllowed
		} else {
			res.Status = protocol.StatusNotFound
		}
		return res, nil
	}

	if err := protocol.ReadBody(body, req); err != nil {
		return nil, err
	}

	out, err := h.ServeRequest(req, res)
	if err != nil {
		return nil, fmt.Errorf("ハンドラ %s %s がエラーを返しました: %w", req.Method, lookup, err)
	}
	if out == nil {
		out = res
	}
	return out, nil
}
