package server

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed all:dist
var embedFS embed.FS

// DefaultAssets は埋め込みの静的ファイルを返す
// アセットディレクトリが指定されていないときに使う
func DefaultAssets() fs.FS {
	// dist のサブディレクトリを取得
	assetsFS, err := fs.Sub(embedFS, "dist")
	if err != nil {
		log.Fatalf("埋め込み静的ファイルシステムの作成に失敗: %v", err)
	}
	return assetsFS
}
