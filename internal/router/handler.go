package router

import "minihttp/internal/protocol"

// Handler はリクエストとデフォルトのレスポンスを受け取り、
// 返すべきレスポンスを作成する
type Handler interface {
	ServeRequest(req *protocol.Request, res *protocol.Response) (*protocol.Response, error)
}

// HandlerFunc は関数を Handler として使うためのアダプタ
type HandlerFunc func(req *protocol.Request, res *protocol.Response) (*protocol.Response, error)

// ServeRequest は f(req, res) を呼び出す
func (f HandlerFunc) ServeRequest(req *protocol.Request, res *protocol.Response) (*protocol.Response, error) {
	return f(req, res)
}
