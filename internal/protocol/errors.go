package protocol

import "errors"

var (
	// ErrBadRequest はクライアントの送ったリクエストが不正であることを示す
	ErrBadRequest = errors.New("bad request")

	// ErrEmptyRequest はバイトを1つも送らずにクライアントが切断したことを示す
	ErrEmptyRequest = errors.New("empty request")
)

// StatusFor はエラーをクライアントに返すステータスに変換する
func StatusFor(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrBadRequest):
		return StatusBadRequest
	default:
		return StatusInternalServerError
	}
}
