package main

import (
	"context"
	"log"

	"minihttp/internal/app"
	"minihttp/internal/config"
	"minihttp/internal/server"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// サーバーを作成してハンドラを登録
	srv := server.New(cfg)
	app.Register(srv)

	// コンテキストを作成
	ctx := context.Background()

	// サーバーを起動
	log.Printf("サーバーを起動します: %s", cfg.ServerAddress())
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
