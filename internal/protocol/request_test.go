package protocol

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
)

// errReader は常に指定のエラーを返す
type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func TestReadHeaders(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		rest     string
	}{
		{
			name:     "終端で止まる",
			input:    "GET / HTTP/1.1\r\nHost: example.com\r\n\r\nbody",
			expected: "GET / HTTP/1.1\r\nHost: example.com\r\n\r\n",
			rest:     "body",
		},
		{
			name:     "終端なしでEOF",
			input:    "GET / HTTP/1.1\r\n",
			expected: "GET / HTTP/1.1\r\n",
		},
		{
			name:     "空のストリーム",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := bufio.NewReader(strings.NewReader(tc.input))
			raw, err := ReadHeaders(r)
			if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			if string(raw) != tc.expected {
				t.Errorf("got %q, want %q", raw, tc.expected)
			}

			rest, _ := io.ReadAll(r)
			if string(rest) != tc.rest {
				t.Errorf("残りのバイト: got %q, want %q", rest, tc.rest)
			}
		})
	}
}

func TestReadHeaders_ReadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := ReadHeaders(bufio.NewReader(errReader{err: boom}))
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte("POST /api/items HTTP/1.1\r\nContent-Type: application/json\r\nX-Trace: a: b\r\n\r\n"))
	if err != nil {
		t.Fatalf("解析に失敗しました: %v", err)
	}

	if req.Method != "POST" || req.Path != "/api/items" || req.Version != "HTTP/1.1" {
		t.Errorf("リクエスト行が一致しません: %s %s %s", req.Method, req.Path, req.Version)
	}
	if got := req.Headers["content-type"]; got != "application/json" {
		t.Errorf("content-type: got %q", got)
	}
	// 最初の ": " でのみ分割する
	if got := req.Headers["x-trace"]; got != "a: b" {
		t.Errorf("x-trace: got %q", got)
	}
	if got := req.Headers.Get("Content-Type"); got != "application/json" {
		t.Errorf("Get: got %q", got)
	}
	if len(req.Body) != 0 {
		t.Errorf("ボディは空のはず: %q", req.Body)
	}
}

func TestParseRequest_DuplicateHeaderFirstWins(t *testing.T) {
	req, err := ParseRequest([]byte("GET / HTTP/1.1\r\nA: 1\r\nA: 2\r\n\r\n"))
	if err != nil {
		t.Fatalf("解析に失敗しました: %v", err)
	}
	if got := req.Headers["a"]; got != "1" {
		t.Errorf("got %q, want %q", got, "1")
	}
}

func TestParseRequest_BareLineFeeds(t *testing.T) {
	req, err := ParseRequest([]byte("GET /x HTTP/1.0\nHost: h\n\n"))
	if err != nil {
		t.Fatalf("解析に失敗しました: %v", err)
	}
	if req.Path != "/x" || req.Headers["host"] != "h" {
		t.Errorf("解析結果が一致しません: %+v", req)
	}
}

func TestParseRequest_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  error
	}{
		{"トークン不足", "BADLINE\r\n\r\n", ErrBadRequest},
		{"トークン過多", "GET / HTTP/1.1 extra\r\n\r\n", ErrBadRequest},
		{"空トークン", "GET  HTTP/1.1\r\n\r\n", ErrBadRequest},
		{"区切りなしヘッダー", "GET / HTTP/1.1\r\nHost:example.com\r\n\r\n", ErrBadRequest},
		{"UTF-8 ではないヘッダー", "GET / HTTP/1.1\r\nX: \xff\xfe\r\n\r\n", ErrBadRequest},
		{"空のブロック", "", ErrEmptyRequest},
		{"空行のみ", "\r\n\r\n", ErrEmptyRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRequest([]byte(tc.input))
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestReadBody(t *testing.T) {
	req := &Request{Headers: Header{"content-length": "5"}}
	r := strings.NewReader("hello, rest")
	if err := ReadBody(r, req); err != nil {
		t.Fatalf("ボディの読み込みに失敗しました: %v", err)
	}
	if string(req.Body) != "hello" {
		t.Errorf("got %q, want %q", req.Body, "hello")
	}

	rest, _ := io.ReadAll(r)
	if string(rest) != ", rest" {
		t.Errorf("余分に読み込んでいます: rest=%q", rest)
	}
}

func TestReadBody_ShortStream(t *testing.T) {
	req := &Request{Headers: Header{"content-length": "5"}}
	err := ReadBody(strings.NewReader("hi"), req)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("got %v, want %v", err, io.ErrUnexpectedEOF)
	}
	if StatusFor(err) != StatusInternalServerError {
		t.Errorf("短いストリームは500になるはず: %v", StatusFor(err))
	}
}

func TestReadBody_NoContentLength(t *testing.T) {
	req := &Request{Headers: Header{}}
	if err := ReadBody(strings.NewReader("ignored"), req); err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if req.Body != nil {
		t.Errorf("ボディは空のはず: %q", req.Body)
	}
}

func TestContentLength_Invalid(t *testing.T) {
	for _, v := range []string{"abc", "-1", ""} {
		_, ok, err := ContentLength(Header{"content-length": v})
		if !ok {
			t.Errorf("%q: ヘッダーは存在するはず", v)
		}
		if !errors.Is(err, ErrBadRequest) {
			t.Errorf("%q: got %v, want %v", v, err, ErrBadRequest)
		}
	}
}

func TestDrainBody(t *testing.T) {
	r := strings.NewReader("abcdefNEXT")
	if err := DrainBody(r, Header{"content-length": "6"}); err != nil {
		t.Fatalf("読み捨てに失敗しました: %v", err)
	}
	rest, _ := io.ReadAll(r)
	if string(rest) != "NEXT" {
		t.Errorf("got %q, want %q", rest, "NEXT")
	}

	// 宣言より短くてもエラーにしない
	if err := DrainBody(strings.NewReader("ab"), Header{"content-length": "6"}); err != nil {
		t.Errorf("予期しないエラー: %v", err)
	}
}
