package protocol

import (
	"bytes"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Response はハンドラが組み立てるレスポンス
// ヘッダー名は設定されたまま書き出す
type Response struct {
	Status  Status
	Headers Header
	Body    []byte
}

// NewResponse はステータス200、ヘッダーとボディが空のレスポンスを作成する
func NewResponse() *Response {
	return &Response{
		Status:  StatusOK,
		Headers: make(Header),
	}
}

// SetHeader はヘッダーを設定する
func (r *Response) SetHeader(key, value string) {
	if r.Headers == nil {
		r.Headers = make(Header)
	}
	r.Headers[key] = value
}

// HasHeader は大文字小文字を区別せずにヘッダーの有無を返す
func (r *Response) HasHeader(key string) bool {
	for k := range r.Headers {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// SetBody は Content-Type とボディをまとめて設定する
func (r *Response) SetBody(contentType string, body []byte) {
	r.SetHeader("Content-Type", contentType)
	r.Body = body
}

// EnsureContentLength は Content-Length が未設定ならボディ長で設定する
func (r *Response) EnsureContentLength() {
	if r.HasHeader("content-length") {
		return
	}
	r.SetHeader("Content-Length", strconv.Itoa(len(r.Body)))
}

// Serialize はレスポンスをワイヤ形式に変換する
// ヘッダー値のエスケープは行わない。出力を安定させるためヘッダーはキー順に並べる。
func (r *Response) Serialize() []byte {
	var buf bytes.Buffer
	buf.WriteString("HTTP/1.1 ")
	buf.WriteString(r.Status.String())
	buf.WriteString("\r\n")

	keys := make([]string, 0, len(r.Headers))
	for k := range r.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf.WriteString(k)
		buf.WriteString(": ")
		buf.WriteString(r.Headers[k])
		buf.WriteString("\r\n")
	}

	buf.WriteString("\r\n")
	buf.Write(r.Body)
	return buf.Bytes()
}

// WriteTo はシリアライズしたレスポンスを w に書き込む
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Serialize())
	return int64(n), err
}
