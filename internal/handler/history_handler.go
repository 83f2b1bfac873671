package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/mealtrack/internal/middleware"
	"github.com/hitoshi/mealtrack/internal/model"
)

// HistoryServiceInterface は履歴ハンドラーが必要とするサービスインターフェース。
type HistoryServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.HistoryEntry, error)
	Create(ctx context.Context, userID string, fields map[string]any) (*model.HistoryEntry, error)
	Delete(ctx context.Context, userID, entryID string) error
}

// HistoryHandler は履歴ログのHTTPハンドラー。
type HistoryHandler struct {
	service HistoryServiceInterface
	metrics DomainMetricsRecorder
}

// NewHistoryHandler はHistoryHandlerを生成する。
func NewHistoryHandler(service HistoryServiceInterface, recorder DomainMetricsRecorder) *HistoryHandler {
	return &HistoryHandler{
		service: service,
		metrics: recorderOrNop(recorder),
	}
}

// ListHistory は認証ユーザーの履歴一覧を返す。
// 各要素は任意フィールドに id・ownerId・timestamp を加えた平坦なオブジェクト。
// GET /api/history
func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	entries, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	docs := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, e.Document())
	}
	writeJSON(w, http.StatusOK, docs)
}

// CreateHistory は任意のJSONオブジェクトを履歴として保存する。
// POST /api/history
func (h *HistoryHandler) CreateHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	// 配列やスカラーはmapへのデコードで失敗し、nullはnilのままサービス層で弾かれる
	var fields map[string]any
	if err := decodeJSONBody(r, &fields); err != nil {
		writeDecodeError(w, err, model.NewInvalidHistoryError())
		return
	}

	if _, err := h.service.Create(r.Context(), userID, fields); err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordHistoryCreated()
	writeText(w, http.StatusCreated, "History added successfully")
}

// DeleteHistory は認証ユーザーが所有する履歴エントリを削除する。
// DELETE /api/history/{id}
func (h *HistoryHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	err = h.service.Delete(r.Context(), userID, chi.URLParam(r, "id"))
	switch {
	case err == nil:
	case errors.Is(err, model.ErrInvalidID):
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidIDError("history item"))
		return
	case errors.Is(err, model.ErrNotFound):
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewHistoryNotFoundError())
		return
	default:
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordHistoryDeleted()
	writeText(w, http.StatusOK, "History item deleted successfully")
}
