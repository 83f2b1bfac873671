package middleware

import (
	"errors"
	"net/http"

	"github.com/hitoshi/mealtrack/internal/model"
)

// NewBodyLimitMiddleware はリクエストボディのサイズを制限するミドルウェアを返す。
// Content-Lengthが上限を超える場合は即座に413を返し、
// それ以外は読み取り時に上限で打ち切る（ハンドラーはIsBodyTooLargeで判定する）。
func NewBodyLimitMiddleware(limit int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				WriteErrorResponse(w, http.StatusRequestEntityTooLarge, model.NewPayloadTooLargeError(limit))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IsBodyTooLarge はエラーがボディサイズ上限超過によるものかどうかを判定し、上限値を返す。
func IsBodyTooLarge(err error) (int64, bool) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return maxErr.Limit, true
	}
	return 0, false
}
