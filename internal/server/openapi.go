package server

import (
	"fmt"
	"net/http"
	"strings"

	"minihttp/internal/router"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	openAPITitle   = "minihttp"
	openAPIVersion = "1.0.0"
)

// openAPIMethods は PathItem に設定できるメソッド
var openAPIMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodDelete:  true,
	http.MethodConnect: true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
	http.MethodPatch:   true,
}

// BuildOpenAPI は登録済みのルートとマウントから OpenAPI 3 ドキュメントを作成する
// 標準外のメソッドのルートはドキュメントに含めない
func BuildOpenAPI(routes []router.Route, mounts []router.Mount) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   openAPITitle,
			Version: openAPIVersion,
		},
		Paths: openapi3.NewPaths(),
	}

	for _, r := range routes {
		method := strings.ToUpper(r.Method)
		if !openAPIMethods[method] {
			continue
		}

		op := openapi3.NewOperation()
		op.Summary = fmt.Sprintf("%s %s", method, r.Path)
		op.Responses = openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("OK"),
			}),
			openapi3.WithStatus(http.StatusBadRequest, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Bad Request"),
			}),
			openapi3.WithStatus(http.StatusInternalServerError, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Internal Server Error"),
			}),
		)
		pathItem(doc, r.Path).SetOperation(method, op)
	}

	// 静的アセットはプレフィックスの GET として記述する
	for _, m := range mounts {
		op := openapi3.NewOperation()
		op.Summary = "静的アセット"
		op.Description = fmt.Sprintf("%s 配下のファイルを %s から配信する", m.Prefix, m.Source)
		op.Responses = openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("ファイルの内容"),
			}),
			openapi3.WithStatus(http.StatusNotFound, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("ファイルが存在しない"),
			}),
		)
		item := pathItem(doc, m.Prefix)
		if item.Get == nil {
			item.Get = op
		}
	}

	return doc
}

// pathItem はパスの PathItem を返す。なければ作成する
func pathItem(doc *openapi3.T, path string) *openapi3.PathItem {
	item := doc.Paths.Value(path)
	if item == nil {
		item = &openapi3.PathItem{}
		doc.Paths.Set(path, item)
	}
	return item
}
