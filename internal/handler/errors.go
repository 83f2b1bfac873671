package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/hitoshi/mealtrack/internal/middleware"
	"github.com/hitoshi/mealtrack/internal/model"
)

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	middleware.WriteErrorResponse(w, statusCode, apiErr)
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("failed to write response", slog.String("error", err.Error()))
	}
}

// writeText はプレーンテキストのレスポンスを書き込む。
func writeText(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	w.Write([]byte(body))
}

// errTrailingData はボディにJSON値が複数含まれていることを表す。
var errTrailingData = errors.New("request body must contain a single JSON value")

// decodeJSONBody はリクエストボディをJSONとしてvにデコードする。
// 数値はjson.Numberとして保持する（任意フィールドの履歴で精度を落とさないため）。
// 1つ目の値の後に空白以外が続く場合はエラーを返す。
func decodeJSONBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return err
		}
		return errTrailingData
	}
	return nil
}

// writeDecodeError はボディのデコード失敗をレスポンスに変換する。
// 上限超過は413、それ以外はinvalidで指定したエラーを400で返す。
func writeDecodeError(w http.ResponseWriter, err error, invalid *model.APIError) {
	if limit, ok := middleware.IsBodyTooLarge(err); ok {
		writeAPIErrorResponse(w, http.StatusRequestEntityTooLarge, model.NewPayloadTooLargeError(limit))
		return
	}
	writeAPIErrorResponse(w, http.StatusBadRequest, invalid)
}

// writeUnauthorized は認証コンテキストが無い場合のレスポンスを書き込む。
func writeUnauthorized(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	switch {
	case errors.Is(err, model.ErrDuplicateUser):
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewUserExistsError())
		return
	case errors.Is(err, model.ErrUserNotFound):
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewUserNotFoundError())
		return
	case errors.Is(err, model.ErrInvalidCredentials):
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewInvalidPasswordError())
		return
	}

	// 上記以外は内部エラーとして扱い、詳細はログのみに残す
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidRequest,
		model.ErrCodeInvalidMeal,
		model.ErrCodeInvalidHistory,
		model.ErrCodeInvalidID,
		model.ErrCodeUserExists:
		return http.StatusBadRequest
	case model.ErrCodeUnauthorized,
		model.ErrCodeTokenInvalid,
		model.ErrCodeTokenExpired,
		model.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case model.ErrCodeUserNotFound,
		model.ErrCodeMealNotFound,
		model.ErrCodeHistoryNotFound,
		model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case model.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
