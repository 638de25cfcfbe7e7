package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"minihttp/internal/config"
	"minihttp/internal/router"
)

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	routes     router.Registry
	mounts     router.MountTable
	dispatcher *router.Dispatcher

	mu       sync.Mutex
	listener net.Listener
	admin    *AdminServer
	adminLn  net.Listener
	closing  atomic.Bool
	conns    sync.WaitGroup

	// 統計情報
	startedAt time.Time
	active    atomic.Int64
	served    atomic.Int64
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config) *Server {
	routes := router.NewRegistry()
	mounts := router.NewMountTable()

	return &Server{
		config: cfg,
		routes: routes,
		mounts: mounts,
		dispatcher: router.NewDispatcher(routes, mounts,
			router.WithMIMESniffing(cfg.Server.SniffMIME)),
	}
}

// Handle はパスとメソッドにハンドラを登録する
// 登録済みの組に対する2回目以降の登録は無視される
func (s *Server) Handle(path, method string, h router.Handler) {
	if !s.routes.Register(path, method, h) {
		log.Printf("ルート %s %s は登録済みのため無視します", strings.ToUpper(method), path)
	}
}

// HandleFunc は関数をハンドラとして登録する
func (s *Server) HandleFunc(path, method string, f router.HandlerFunc) {
	s.Handle(path, method, f)
}

func (s *Server) Get(path string, f router.HandlerFunc)     { s.HandleFunc(path, "get", f) }
func (s *Server) Head(path string, f router.HandlerFunc)    { s.HandleFunc(path, "head", f) }
func (s *Server) Post(path string, f router.HandlerFunc)    { s.HandleFunc(path, "post", f) }
func (s *Server) Put(path string, f router.HandlerFunc)     { s.HandleFunc(path, "put", f) }
func (s *Server) Delete(path string, f router.HandlerFunc)  { s.HandleFunc(path, "delete", f) }
func (s *Server) Connect(path string, f router.HandlerFunc) { s.HandleFunc(path, "connect", f) }
func (s *Server) Options(path string, f router.HandlerFunc) { s.HandleFunc(path, "options", f) }
func (s *Server) Trace(path string, f router.HandlerFunc)   { s.HandleFunc(path, "trace", f) }
func (s *Server) Patch(path string, f router.HandlerFunc)   { s.HandleFunc(path, "patch", f) }

// Mount はディレクトリをパスプレフィックスにマウントする
func (s *Server) Mount(prefix, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("アセットディレクトリ %s を確認できません: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s はディレクトリではありません", dir)
	}
	return s.MountFS(prefix, os.DirFS(dir), dir)
}

// MountFS はファイルシステムをパスプレフィックスにマウントする
// source はログや管理APIで表示する名前
func (s *Server) MountFS(prefix string, fsys fs.FS, source string) error {
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("プレフィックスは / で始まる必要があります: %q", prefix)
	}
	if !s.mounts.Add(router.Mount{Prefix: prefix, Source: source, FS: fsys}) {
		log.Printf("マウント %s は登録済みのため無視します", prefix)
		return nil
	}
	log.Printf("静的アセットをマウントしました: %s -> %s", prefix, source)
	return nil
}

// Routes は登録済みのルートを返す
func (s *Server) Routes() []router.Route {
	return s.routes.Routes()
}

// Mounts は登録済みのマウントを返す
func (s *Server) Mounts() []router.Mount {
	return s.mounts.Mounts()
}

// Listen は設定されたアセットをマウントし、リスナーを作成する
// 既にリッスン中であれば何もしない
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return nil
	}

	// 設定ファイルのアセットはコードで登録したマウントの後に追加する
	for _, m := range s.config.Assets {
		if err := s.Mount(m.Prefix, m.Dir); err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", s.config.ServerAddress())
	if err != nil {
		return fmt.Errorf("リスナーの作成に失敗: %w", err)
	}

	if s.config.Admin.Enabled {
		adminLn, err := net.Listen("tcp", s.config.AdminAddress())
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("管理APIリスナーの作成に失敗: %w", err)
		}
		s.adminLn = adminLn
		s.admin = NewAdmin(s)
	}

	s.listener = ln
	s.startedAt = time.Now()
	return nil
}

// Addr はリッスン中のアドレスを返す。Listen 前は nil
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// running はリッスン中かどうかと起動からの経過時間を返す
func (s *Server) running() (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil || s.closing.Load() {
		return false, 0
	}
	return true, time.Since(s.startedAt)
}

// AdminAddr は管理APIのアドレスを返す。無効な場合は nil
func (s *Server) AdminAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.adminLn == nil {
		return nil
	}
	return s.adminLn.Addr()
}

// Start はサーバーを起動する
// コンテキストのキャンセルかシグナルを受け取るとシャットダウンして戻る
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	go func() {
		log.Printf("HTTPサーバーを起動しています: %s", s.listener.Addr())
		if err := s.Serve(s.listener); err != nil {
			shutdownCh <- err
		}
	}()

	if s.admin != nil {
		go func() {
			log.Printf("管理APIを起動しています: %s", s.adminLn.Addr())
			if err := s.admin.Serve(s.adminLn); err != nil {
				shutdownCh <- fmt.Errorf("管理APIの起動に失敗: %w", err)
			}
		}()
	}

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	case err := <-shutdownCh:
		_ = s.Shutdown()
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Serve はリスナーでコネクションを受け付け、1コネクションごとにゴルーチンで処理する
// リスナーが閉じられると nil を返す
func (s *Server) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.closing.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Printf("接続の受け付けに失敗: %v", err)
			time.Sleep(10 * time.Millisecond)
			continue
		}

		// Shutdown の Wait と競合しないようにロック内で Add する
		s.mu.Lock()
		if s.closing.Load() {
			s.mu.Unlock()
			_ = conn.Close()
			return nil
		}
		s.conns.Add(1)
		s.mu.Unlock()

		go func() {
			defer s.conns.Done()
			s.handleConnection(conn)
		}()
	}
}

// Shutdown はサーバーをグレースフルにシャットダウンする
// 新しい接続の受け付けを止め、処理中の接続を最大5秒待つ
func (s *Server) Shutdown() error {
	log.Println("サーバーをシャットダウンしています...")

	// 5秒のタイムアウトを設定
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.mu.Lock()
	s.closing.Store(true)
	ln, admin := s.listener, s.admin
	s.mu.Unlock()

	var errs []error
	if ln != nil {
		if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, fmt.Errorf("リスナーのクローズに失敗: %w", err))
		}
	}
	if admin != nil {
		if err := admin.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("管理APIのシャットダウンに失敗: %w", err))
		}
	}

	done := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		errs = append(errs, fmt.Errorf("処理中の接続の完了待ちがタイムアウトしました (%d 件)", s.active.Load()))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	log.Println("サーバーが正常にシャットダウンされました")
	return nil
}
