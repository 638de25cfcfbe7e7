// Package main は静的ファイルサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"minihttp/internal/config"
	"minihttp/internal/server"
)

func main() {
	// コマンドラインオプション
	var (
		host   = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port   = flag.Int("port", 0, "サーバーのポート (デフォルト: 4000)")
		prefix = flag.String("prefix", "/", "静的ファイルを配信するパスプレフィックス")
		dir    = flag.String("dir", "", "配信するディレクトリ (未指定なら埋め込みのページ)")
		admin  = flag.Int("admin", 0, "管理APIのポート (0 で設定ファイルに従う)")
		help   = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("minihttp static server")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *admin != 0 {
		cfg.Admin.Enabled = true
		cfg.Admin.Port = *admin
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定が不正です: %v", err)
	}

	srv := server.New(cfg)

	// 静的ファイルをマウント
	if *dir != "" {
		err = srv.Mount(*prefix, *dir)
	} else {
		err = srv.MountFS(*prefix, server.DefaultAssets(), "embedded")
	}
	if err != nil {
		log.Fatalf("静的ファイルのマウントに失敗しました: %v", err)
	}

	// サーバーを起動
	log.Printf("静的ファイルサーバーを起動します: %s (%s)", cfg.ServerAddress(), *prefix)
	if err := srv.Start(context.Background()); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
