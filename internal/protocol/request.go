package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// headerTerminator はヘッダーブロックの終端
var headerTerminator = []byte("\r\n\r\n")

// Header は小文字化したヘッダー名から値へのマップ
// net/http.Header と異なり、1つのキーに値は1つだけ持つ
type Header map[string]string

// Get はヘッダー名の大文字小文字を区別せずに値を返す
func (h Header) Get(key string) string {
	return h[strings.ToLower(key)]
}

// Request は1つのコネクションで受け取るリクエスト
type Request struct {
	Method  string
	Path    string
	Version string
	Headers Header
	Body    []byte
}

// ReadHeaders は終端 "\r\n\r\n" が現れるまでバイトを読み込む
// 戻り値には終端も含まれる。終端より前にストリームが終わった場合は
// それまでに読んだバイトをエラーなしで返す。
func ReadHeaders(r io.ByteReader) ([]byte, error) {
	buf := make([]byte, 0, 512)
	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return buf, nil
			}
			return nil, fmt.Errorf("ヘッダーの読み込みに失敗: %w", err)
		}

		buf = append(buf, b)
		if bytes.HasSuffix(buf, headerTerminator) {
			return buf, nil
		}
	}
}

// ParseRequest はヘッダーブロックを解析してRequestを作成する
// ボディはここでは読まない。ReadBody を使うこと。
func ParseRequest(raw []byte) (*Request, error) {
	req := &Request{Headers: make(Header)}
	seenRequestLine := false

	for _, line := range bytes.Split(raw, []byte("\n")) {
		line = bytes.TrimSuffix(line, []byte("\r"))
		if len(line) == 0 {
			continue
		}
		if !utf8.Valid(line) {
			return nil, fmt.Errorf("%w: UTF-8 ではないバイトを含む行があります", ErrBadRequest)
		}

		// 最初の行はリクエスト行
		// GET /index.html HTTP/1.1
		if !seenRequestLine {
			if err := parseRequestLine(req, string(line)); err != nil {
				return nil, err
			}
			seenRequestLine = true
			continue
		}

		// User-Agent: curl/8.0
		key, value, ok := strings.Cut(string(line), ": ")
		if !ok {
			return nil, fmt.Errorf("%w: 不正なヘッダー行 %q", ErrBadRequest, line)
		}
		key = strings.ToLower(key)
		if _, exists := req.Headers[key]; !exists {
			req.Headers[key] = value
		}
	}

	if !seenRequestLine {
		return nil, ErrEmptyRequest
	}

	return req, nil
}

func parseRequestLine(req *Request, line string) error {
	fields := strings.Split(line, " ")
	if len(fields) != 3 {
		return fmt.Errorf("%w: 不正なリクエスト行 %q", ErrBadRequest, line)
	}
	for _, f := range fields {
		if f == "" {
			return fmt.Errorf("%w: 不正なリクエスト行 %q", ErrBadRequest, line)
		}
	}

	req.Method = fields[0]
	req.Path = fields[1]
	req.Version = fields[2]
	return nil
}

// ContentLength は content-length ヘッダーを解析する
// ヘッダーがない場合は ok=false を返す
func ContentLength(h Header) (n int64, ok bool, err error) {
	v, ok := h["content-length"]
	if !ok {
		return 0, false, nil
	}

	n, err = strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || n < 0 {
		return 0, true, fmt.Errorf("%w: 不正な Content-Length %q", ErrBadRequest, v)
	}
	return n, true, nil
}

// ReadBody は content-length 分のボディを読み込んで req.Body に格納する
// ストリームが途中で終わった場合はエラーを返す
func ReadBody(r io.Reader, req *Request) error {
	n, ok, err := ContentLength(req.Headers)
	if err != nil {
		return err
	}
	if !ok {
		req.Body = nil
		return nil
	}

	// 一度に n バイトを確保せず、届いた分だけバッファを伸ばす
	var buf bytes.Buffer
	copied, err := io.CopyN(&buf, r, n)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("ボディの読み込みに失敗 (%d/%d バイト): %w", copied, n, err)
	}

	req.Body = buf.Bytes()
	return nil
}

// DrainBody はハンドラに渡さないボディを読み捨てる
// ストリームが content-length より先に終わっても、残りがないのでエラーにはしない
func DrainBody(r io.Reader, h Header) error {
	n, ok, err := ContentLength(h)
	if err != nil {
		return err
	}
	if !ok || n == 0 {
		return nil
	}

	if _, err := io.CopyN(io.Discard, r, n); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("ボディの読み捨てに失敗: %w", err)
	}
	return nil
}
