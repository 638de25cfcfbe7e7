package server

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"minihttp/internal/protocol"

	"github.com/google/uuid"
)

// handleConnection は1つのコネクションで1回のリクエスト/レスポンスを処理する
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	id := uuid.NewString()
	s.active.Add(1)
	defer s.active.Add(-1)
	s.served.Add(1)

	if d := s.config.Server.ReadTimeout; d > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(d))
	}

	req, res, err := s.process(bufio.NewReader(conn))
	if err != nil {
		// 何も送らずに切断したクライアントには応答しない
		if errors.Is(err, protocol.ErrEmptyRequest) {
			log.Printf("[%s] 空のリクエストのため切断します: %s", id, conn.RemoteAddr())
			return
		}

		status := protocol.StatusFor(err)
		log.Printf("[%s] リクエストの処理に失敗 (%s): %v", id, status, err)
		res = &protocol.Response{Status: status, Headers: make(protocol.Header)}
	}

	if d := s.config.Server.WriteTimeout; d > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(d))
	}

	res.EnsureContentLength()
	if _, err := res.WriteTo(conn); err != nil {
		log.Printf("[%s] レスポンスの書き込みに失敗: %v", id, err)
		return
	}

	if req != nil {
		log.Printf("[%s] %s %s -> %s", id, req.Method, req.Path, res.Status)
	}
}

// process はヘッダーの読み込みから振り分けまでを行う
// ハンドラの panic はエラーに変換する
func (s *Server) process(r *bufio.Reader) (req *protocol.Request, res *protocol.Response, err error) {
	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = fmt.Errorf("ハンドラが panic しました: %v", p)
		}
	}()

	raw, err := protocol.ReadHeaders(r)
	if err != nil {
		return nil, nil, err
	}

	req, err = protocol.ParseRequest(raw)
	if err != nil {
		return nil, nil, err
	}

	res, err = s.dispatcher.Dispatch(req, r)
	if err != nil {
		return req, nil, err
	}
	return req, res, nil
}
