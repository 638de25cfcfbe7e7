package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"minihttp/internal/protocol"
)

func adminRequest(t *testing.T, a *AdminServer, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func TestAdminHealthCheck(t *testing.T) {
	a := NewAdmin(newTestServer(t))
	rec := adminRequest(t, a, "/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("予期しないステータスコード: got %d", rec.Code)
	}
	var body HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("JSONの解析に失敗しました: %v", err)
	}
	if body.Status != "healthy" {
		t.Errorf("got %q, want healthy", body.Status)
	}
}

func TestAdminStatus(t *testing.T) {
	srv := newTestServer(t)
	a := NewAdmin(srv)

	rec := adminRequest(t, a, "/api/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("予期しないステータスコード: got %d", rec.Code)
	}
	var body StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("JSONの解析に失敗しました: %v", err)
	}

	// Listen 前は stopped
	if body.Status != "stopped" {
		t.Errorf("status: got %q, want stopped", body.Status)
	}
	if body.Routes != 4 || body.Mounts != 1 {
		t.Errorf("routes=%d mounts=%d, want 4 and 1", body.Routes, body.Mounts)
	}
	if body.Server.Host != "127.0.0.1" {
		t.Errorf("host: got %q", body.Server.Host)
	}
}

func TestAdminRoutes(t *testing.T) {
	a := NewAdmin(newTestServer(t))
	rec := adminRequest(t, a, "/api/routes")

	var body RoutesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("JSONの解析に失敗しました: %v", err)
	}
	if len(body.Routes) != 4 {
		t.Fatalf("routes: got %d, want 4", len(body.Routes))
	}
	if body.Routes[0].Path != "/echo" || body.Routes[0].Method != "post" {
		t.Errorf("先頭のルート: got %+v", body.Routes[0])
	}
	if len(body.Mounts) != 1 || body.Mounts[0].Prefix != "/static" || body.Mounts[0].Source != "memory" {
		t.Errorf("mounts: got %+v", body.Mounts)
	}
}

func TestAdminOpenAPI(t *testing.T) {
	a := NewAdmin(newTestServer(t))
	rec := adminRequest(t, a, "/api/openapi.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("予期しないステータスコード: got %d", rec.Code)
	}

	var doc struct {
		OpenAPI string                            `json:"openapi"`
		Paths   map[string]map[string]interface{} `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("JSONの解析に失敗しました: %v", err)
	}
	if doc.OpenAPI != "3.0.3" {
		t.Errorf("openapi: got %q", doc.OpenAPI)
	}

	expected := map[string]string{
		"/hello":  "get",
		"/echo":   "post",
		"/static": "get",
	}
	for path, method := range expected {
		item, ok := doc.Paths[path]
		if !ok {
			t.Errorf("パス %s がありません", path)
			continue
		}
		if _, ok := item[method]; !ok {
			t.Errorf("パス %s にメソッド %s がありません: %v", path, method, item)
		}
	}
}

func TestBuildOpenAPI_SkipsUnknownMethods(t *testing.T) {
	srv := New(newTestConfig())
	srv.HandleFunc("/custom", "purge", func(req *protocol.Request, res *protocol.Response) (*protocol.Response, error) {
		return res, nil
	})
	srv.Get("/custom", func(req *protocol.Request, res *protocol.Response) (*protocol.Response, error) {
		return res, nil
	})

	doc := BuildOpenAPI(srv.Routes(), srv.Mounts())
	item := doc.Paths.Value("/custom")
	if item == nil || item.Get == nil {
		t.Fatal("GET /custom がドキュメントにありません")
	}
	if len(item.Operations()) != 1 {
		t.Errorf("標準外のメソッドが含まれています: %v", item.Operations())
	}
}

func TestAdminNotFound(t *testing.T) {
	a := NewAdmin(newTestServer(t))
	rec := adminRequest(t, a, "/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}
}

// TestAdminServe は管理APIが実際のポートで待ち受けることをテストする
func TestAdminServe(t *testing.T) {
	cfg := newTestConfig()
	cfg.Admin.Enabled = true
	cfg.Admin.Host = "127.0.0.1"

	srv := New(cfg)
	addr, stop := startTestServer(t, srv)
	defer stop()

	if addr == "" || srv.AdminAddr() == nil {
		t.Fatal("管理APIのアドレスが取得できません")
	}

	client := &http.Client{Timeout: 5 * time.Second}
	url := fmt.Sprintf("http://%s/api/status", srv.AdminAddr())

	var (
		resp *http.Response
		err  error
	)
	// Serve の開始を待つ
	deadline := time.Now().Add(3 * time.Second)
	for {
		req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
		resp, err = client.Do(req)
		if err == nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("HTTPリクエストでエラーが発生しました: %v", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	var body StatusResponse
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("JSONの解析に失敗しました: %v (%s)", err, data)
	}
	if body.Status != "running" {
		t.Errorf("status: got %q, want running", body.Status)
	}
}
