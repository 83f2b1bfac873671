package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/hitoshi/mealtrack/internal/metrics"
	"github.com/hitoshi/mealtrack/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Register はユーザーを登録する。ユーザー名重複時は model.ErrDuplicateUser を返す。
	Register(ctx context.Context, username, password string) (*model.User, error)
	// Login は資格情報を検証し、署名済みトークンを返す。
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler は登録・ログインのHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	metrics DomainMetricsRecorder
}

// NewAuthHandler はAuthHandlerを生成する。recorderがnilの場合はメトリクスを記録しない。
func NewAuthHandler(service AuthServiceInterface, recorder DomainMetricsRecorder) *AuthHandler {
	return &AuthHandler{
		service: service,
		metrics: recorderOrNop(recorder),
	}
}

// credentialsRequest は登録・ログインリクエストのボディ。
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register はユーザー登録を処理する。
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeDecodeError(w, err, model.NewInvalidRequestError())
		return
	}

	if _, err := h.service.Register(r.Context(), req.Username, req.Password); err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordRegistration()

	writeJSON(w, http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

// Login はログインを処理し、ベアラートークンを返す。
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeDecodeError(w, err, model.NewInvalidRequestError())
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			h.metrics.RecordLogin(metrics.LoginResultUserNotFound)
		case errors.Is(err, model.ErrInvalidCredentials):
			h.metrics.RecordLogin(metrics.LoginResultInvalidPassword)
		}
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordLogin(metrics.LoginResultSuccess)
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
