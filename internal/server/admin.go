package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminServer は管理APIを提供する gin サーバー
type AdminServer struct {
	engine     *gin.Engine
	httpServer *http.Server
}

// NewAdmin は管理APIサーバーを作成する
func NewAdmin(srv *Server) *AdminServer {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	h := &AdminHandler{server: srv}

	// ヘルスチェックエンドポイント
	engine.GET("/health", h.HealthCheck)

	// APIエンドポイント
	api := engine.Group("/api")
	api.GET("/status", h.GetStatus)
	api.GET("/routes", h.GetRoutes)
	api.GET("/openapi.json", h.GetOpenAPI)

	engine.NoRoute(h.NotFound)

	return &AdminServer{
		engine: engine,
		httpServer: &http.Server{
			Handler:      engine,
			ReadTimeout:  srv.config.Server.ReadTimeout,
			WriteTimeout: srv.config.Server.WriteTimeout,
		},
	}
}

// Handler は管理APIの http.Handler を返す
func (a *AdminServer) Handler() http.Handler {
	return a.engine
}

// Serve はリスナーで管理APIを提供する。Shutdown 後は nil を返す
func (a *AdminServer) Serve(ln net.Listener) error {
	if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown は管理APIをグレースフルに停止する
func (a *AdminServer) Shutdown(ctx context.Context) error {
	return a.httpServer.Shutdown(ctx)
}
