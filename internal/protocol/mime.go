package protocol

import (
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// https://developer.mozilla.org/en-US/docs/Web/HTTP/Basics_of_HTTP/MIME_types/Common_types
const (
	MIMEHTML = "text/html; charset=utf-8"
	MIMECSS  = "text/css; charset=utf-8"
	MIMEText = "text/plain"
)

var mimeTypes = map[string]string{
	".html": MIMEHTML,
	".css":  MIMECSS,
}

// LookupMIME は拡張子表にあるMIMEタイプを返す
func LookupMIME(name string) (string, bool) {
	t, ok := mimeTypes[strings.ToLower(path.Ext(name))]
	return t, ok
}

// MIMEType はファイル名からMIMEタイプを返す
// 表にない拡張子は text/plain
func MIMEType(name string) string {
	if t, ok := LookupMIME(name); ok {
		return t
	}
	return MIMEText
}

// DetectMIME はファイルの内容からMIMEタイプを推定する
func DetectMIME(data []byte) string {
	return mimetype.Detect(data).String()
}
