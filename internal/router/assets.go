package router

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"minihttp/internal/protocol"
)

const indexFile = "index.html"

// AssetName はリクエストパスからマウント内のファイル名を求める
// プレフィックスを取り除いた残りを正規化するので、".." でマウントの外には出られない
func AssetName(m Mount, requestPath string, isFile bool) string {
	rest := strings.TrimPrefix(requestPath, m.Prefix)
	name := strings.TrimPrefix(path.Clean("/"+rest), "/")
	if !isFile {
		return path.Join(name, indexFile)
	}
	if name == "" {
		return "."
	}
	return name
}

// ServeAsset はマウントからファイルを読み込んでレスポンスを作成する
// ファイルが存在しない場合は404、それ以外の読み込みエラーはエラーとして返す
func ServeAsset(m Mount, req *protocol.Request, res *protocol.Response, isFile, sniffMIME bool) (*protocol.Response, error) {
	name := AssetName(m, req.Path, isFile)

	data, err := fs.ReadFile(m.FS, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.Status = protocol.StatusNotFound
			return res, nil
		}
		return nil, fmt.Errorf("アセット %s の読み込みに失敗 (マウント %s): %w", name, m.Prefix, err)
	}

	contentType := protocol.MIMEHTML
	if isFile {
		if t, ok := protocol.LookupMIME(name); ok {
			contentType = t
		} else if sniffMIME {
			contentType = protocol.DetectMIME(data)
		} else {
			contentType = protocol.MIMEText
		}
	}

	res.SetBody(contentType, data)
	return res, nil
}
