package server

import (
	"net/http"
	"time"

	"minihttp/internal/router"

	"github.com/gin-gonic/gin"
)

// AdminHandler は管理APIのハンドラ
type AdminHandler struct {
	server *Server
}

// HealthResponse はヘルスチェックのレスポンス
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ServerInfo はサーバーの待ち受け情報
type ServerInfo struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// ConnectionStats は接続の統計情報
type ConnectionStats struct {
	Active int64 `json:"active"`
	Served int64 `json:"served"`
}

// StatusResponse はシステム状態のレスポンス
type StatusResponse struct {
	Status      string          `json:"status"`
	Server      ServerInfo      `json:"server"`
	Routes      int             `json:"routes"`
	Mounts      int             `json:"mounts"`
	Connections ConnectionStats `json:"connections"`
	Uptime      string          `json:"uptime"`
	Timestamp   time.Time       `json:"timestamp"`
}

// RoutesResponse はルート一覧のレスポンス
type RoutesResponse struct {
	Routes []router.Route `json:"routes"`
	Mounts []router.Mount `json:"mounts"`
}

// ErrorResponse はエラーレスポンス
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthCheck はヘルスチェックエンドポイントの実装
func (h *AdminHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

// GetStatus はシステム状態取得エンドポイントの実装
func (h *AdminHandler) GetStatus(c *gin.Context) {
	srv := h.server

	status := "stopped"
	running, uptime := srv.running()
	if running {
		status = "running"
	}

	c.JSON(http.StatusOK, StatusResponse{
		Status: status,
		Server: ServerInfo{
			Host: srv.config.Server.Host,
			Port: srv.config.Server.Port,
		},
		Routes: len(srv.Routes()),
		Mounts: len(srv.Mounts()),
		Connections: ConnectionStats{
			Active: srv.active.Load(),
			Served: srv.served.Load(),
		},
		Uptime:    uptime.Truncate(time.Second).String(),
		Timestamp: time.Now(),
	})
}

// GetRoutes は登録済みのルートとマウントの一覧を返す
func (h *AdminHandler) GetRoutes(c *gin.Context) {
	c.JSON(http.StatusOK, RoutesResponse{
		Routes: h.server.Routes(),
		Mounts: h.server.Mounts(),
	})
}

// GetOpenAPI は登録済みのルートから生成した OpenAPI ドキュメントを返す
func (h *AdminHandler) GetOpenAPI(c *gin.Context) {
	doc := BuildOpenAPI(h.server.Routes(), h.server.Mounts())
	c.JSON(http.StatusOK, doc)
}

// NotFound は未定義のパスへのレスポンス
func (h *AdminHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:     "not_found",
		Message:   "指定されたパスは存在しません",
		Timestamp: time.Now(),
	})
}
