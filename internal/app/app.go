// Package app はサンプルアプリケーションのハンドラを提供する
package app

import (
	"log"
	"time"

	"minihttp/internal/protocol"
	"minihttp/internal/router"

	"github.com/goccy/go-json"
)

// Registrar はハンドラの登録先
type Registrar interface {
	Get(path string, f router.HandlerFunc)
	Post(path string, f router.HandlerFunc)
}

// Register はサンプルのハンドラを登録する
func Register(r Registrar) {
	r.Get("/", Hello)
	r.Post("/", Echo)
	r.Get("/json", JSON)
}

// Hello は固定のテキストを返す
func Hello(req *protocol.Request, res *protocol.Response) (*protocol.Response, error) {
	res.SetBody(protocol.MIMEText, []byte("Hello world"))
	return res, nil
}

// Echo は受け取ったボディをそのまま返す
func Echo(req *protocol.Request, res *protocol.Response) (*protocol.Response, error) {
	contentType := req.Headers.Get("content-type")
	if contentType == "" {
		contentType = protocol.MIMEText
	}
	res.SetBody(contentType, req.Body)
	return res, nil
}

// Message は JSON ハンドラのレスポンス
type Message struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Host      string    `json:"host,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// JSON は JSON のメッセージを返す
func JSON(req *protocol.Request, res *protocol.Response) (*protocol.Response, error) {
	host := req.Headers.Get("host")
	if host == "" {
		host = "Unknown"
	}
	log.Printf("リクエストを処理します: host=%s", host)

	body, err := json.Marshal(Message{
		Status:    "ok",
		Message:   "hello world",
		Host:      host,
		Timestamp: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	res.SetBody("application/json", body)
	return res, nil
}
