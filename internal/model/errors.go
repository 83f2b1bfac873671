// Package model はドメインモデルを定義する。
package model

import (
	"errors"
	"fmt"
)

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, meal, history, not_found, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUserExists         = "USER_EXISTS"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeTokenInvalid       = "TOKEN_INVALID"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeInvalidMeal        = "INVALID_MEAL"
	ErrCodeInvalidHistory     = "INVALID_HISTORY"
	ErrCodeInvalidID          = "INVALID_ID"
	ErrCodeMealNotFound       = "MEAL_NOT_FOUND"
	ErrCodeHistoryNotFound    = "HISTORY_NOT_FOUND"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// サービス層とハンドラー層で共有するセンチネルエラー。
// ハンドラーは errors.Is でHTTPステータスに変換する。
var (
	// ErrDuplicateUser はユーザー名が既に登録済みであることを表す。
	ErrDuplicateUser = errors.New("user already exists")
	// ErrUserNotFound はユーザー名に該当するユーザーが存在しないことを表す。
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials はパスワードが一致しないことを表す。
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidID はIDの形式が不正であることを表す。
	ErrInvalidID = errors.New("invalid id")
	// ErrNotFound はオーナースコープ内に対象レコードが存在しないことを表す。
	ErrNotFound = errors.New("record not found")
)

// NewInvalidRequestError はリクエストボディの解析失敗エラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	}
}

// NewInvalidCredentialsInputError はユーザー名またはパスワードが空の場合のエラーを生成する。
func NewInvalidCredentialsInputError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "username and password are required",
		Category: "validation",
		Action:   "ユーザー名とパスワードを入力してください。",
	}
}

// NewPasswordTooLongError はbcryptで扱えない長さのパスワードが指定された場合のエラーを生成する。
func NewPasswordTooLongError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "password must be at most 72 bytes",
		Category: "validation",
		Action:   "72バイト以内のパスワードを指定してください。",
	}
}

// NewUsernameTooLongError はユーザー名が上限を超えた場合のエラーを生成する。
func NewUsernameTooLongError(limit int) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("username must be at most %d bytes", limit),
		Category: "validation",
		Action:   fmt.Sprintf("%dバイト以内のユーザー名を指定してください。", limit),
	}
}

// NewInvalidMealError は食事データの必須項目不足エラーを生成する。
func NewInvalidMealError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidMeal,
		Message:  "Invalid meal data",
		Category: "validation",
		Action:   "name、image、probability を指定してください。",
	}
}

// NewInvalidHistoryError は履歴ボディがJSONオブジェクトでない場合のエラーを生成する。
func NewInvalidHistoryError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidHistory,
		Message:  "Invalid history data",
		Category: "validation",
		Action:   "履歴はJSONオブジェクトで送信してください。",
	}
}

// NewUnauthorizedError は認証情報が無い場合のエラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "Access denied",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewTokenInvalidError はトークン検証失敗エラーを生成する。
func NewTokenInvalidError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenInvalid,
		Message:  "Invalid token",
		Category: "auth",
		Action:   "再度ログインしてください。",
	}
}

// NewTokenExpiredError はトークン有効期限切れエラーを生成する。
func NewTokenExpiredError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenExpired,
		Message:  "Token expired",
		Category: "auth",
		Action:   "再度ログインしてください。",
	}
}

// NewPayloadTooLargeError はリクエストボディが上限を超えた場合のエラーを生成する。
func NewPayloadTooLargeError(limit int64) *APIError {
	return &APIError{
		Code:     ErrCodePayloadTooLarge,
		Message:  fmt.Sprintf("リクエストボディが上限（%dバイト）を超えています。", limit),
		Category: "validation",
		Action:   "画像サイズを小さくして再度お試しください。",
	}
}

// NewRateLimitError はレート制限超過エラーを生成する。
func NewRateLimitError() *APIError {
	return &APIError{
		Code:     ErrCodeRateLimited,
		Message:  "Too many requests. Please try again later.",
		Category: "system",
		Action:   "Retry-Afterヘッダーの秒数だけ待ってから再度お試しください。",
	}
}

// NewInternalError は内部エラーの統一レスポンスを生成する。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewNotFoundError は存在しないAPIパスへのリクエストに対するエラーを生成する。
func NewNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeNotFound,
		Message:  "Not found",
		Category: "not_found",
		Action:   "リクエストURLを確認してください。",
	}
}

// NewUserExistsError はユーザー名が登録済みの場合のエラーを生成する。
func NewUserExistsError() *APIError {
	return &APIError{
		Code:     ErrCodeUserExists,
		Message:  "User already exists",
		Category: "auth",
		Action:   "別のユーザー名を指定してください。",
	}
}

// NewUserNotFoundError はログイン時にユーザー名が存在しない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "User not found",
		Category: "auth",
		Action:   "ユーザー名を確認するか、新規登録してください。",
	}
}

// NewInvalidPasswordError はパスワード不一致エラーを生成する。
func NewInvalidPasswordError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "Invalid password",
		Category: "auth",
		Action:   "パスワードを確認してください。",
	}
}

// NewInvalidIDError はパスパラメータのID形式が不正な場合のエラーを生成する。
// resource にはエラーメッセージに含めるリソース名（"meal"、"history item"）を指定する。
func NewInvalidIDError(resource string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidID,
		Message:  fmt.Sprintf("Invalid %s ID", resource),
		Category: "validation",
		Action:   "一覧から取得したIDを指定してください。",
	}
}

func NewMealNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeMealNotFound,
		Message:  "Meal not found",
		Category: "meal",
		Action:   "一覧を再読み込みしてください。",
	}
}

func NewHistoryNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeHistoryNotFound,
		Message:  "History item not found",
		Category: "history",
		Action:   "一覧を再読み込みしてください。",
	}
}
