package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig `yaml:"server"`
	Assets []AssetMount `yaml:"assets"`
	Admin  AdminConfig  `yaml:"admin"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト
	Port int    `yaml:"port"` // リッスンするポート番号

	// タイムアウト設定（0 で無効）
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // 読み込みタイムアウト
	WriteTimeout time.Duration `yaml:"write_timeout"` // 書き込みタイムアウト

	// 拡張子表にないファイルの MIME タイプを内容から推定する
	SniffMIME bool `yaml:"sniff_mime"`
}

// AssetMount は静的アセットのマウント設定
type AssetMount struct {
	Prefix string `yaml:"prefix"` // パスプレフィックス (例: /static)
	Dir    string `yaml:"dir"`    // 配信するディレクトリ
}

// AdminConfig は管理用APIの設定
type AdminConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// Default はデフォルト設定を返す
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 4000,
		},
		Assets: []AssetMount{},
		Admin: AdminConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    4001,
		},
	}
}

// Load は設定を読み込む
// 優先順位: 環境変数 > CONFIG_FILE で指定したYAML > デフォルト値
// カレントディレクトリに .env があれば先に読み込む
func Load() (*Config, error) {
	// .env がなくてもエラーにはしない
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// loadFile はYAMLファイルで設定を上書きする
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("設定ファイル %s の読み込みに失敗: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("設定ファイル %s の解析に失敗: %w", path, err)
	}
	return nil
}

// applyEnv は環境変数で設定を上書きする
func (c *Config) applyEnv() {
	c.Server.Host = getEnvOrDefault("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsIntOrDefault("PORT", c.Server.Port)
	c.Server.SniffMIME = getEnvAsBoolOrDefault("SNIFF_MIME", c.Server.SniffMIME)

	c.Admin.Enabled = getEnvAsBoolOrDefault("ADMIN_ENABLED", c.Admin.Enabled)
	c.Admin.Host = getEnvOrDefault("ADMIN_HOST", c.Admin.Host)
	c.Admin.Port = getEnvAsIntOrDefault("ADMIN_PORT", c.Admin.Port)

	if dir := os.Getenv("ASSETS_DIR"); dir != "" {
		c.Assets = append(c.Assets, AssetMount{
			Prefix: getEnvOrDefault("ASSETS_PREFIX", "/static"),
			Dir:    dir,
		})
	}
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("タイムアウトに負の値は指定できません")
	}

	// アセット設定の検証
	for i, m := range c.Assets {
		if !strings.HasPrefix(m.Prefix, "/") {
			return fmt.Errorf("アセット[%d]: プレフィックスは / で始まる必要があります: %q", i, m.Prefix)
		}
		if m.Dir == "" {
			return fmt.Errorf("アセット[%d]: ディレクトリが指定されていません", i)
		}
	}

	// 管理API設定の検証
	if c.Admin.Enabled {
		if c.Admin.Port < 1 || c.Admin.Port > 65535 {
			return fmt.Errorf("無効な管理APIポート番号: %d", c.Admin.Port)
		}
		if c.Admin.Port == c.Server.Port {
			return fmt.Errorf("管理APIのポートがサーバーと重複しています: %d", c.Admin.Port)
		}
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// AdminAddress は管理APIのリッスンアドレスを返す
func (c *Config) AdminAddress() string {
	return fmt.Sprintf("%s:%d", c.Admin.Host, c.Admin.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault は環境変数を真偽値として取得する
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
