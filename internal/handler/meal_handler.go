package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/mealtrack/internal/meal"
	"github.com/hitoshi/mealtrack/internal/middleware"
	"github.com/hitoshi/mealtrack/internal/model"
)

// MealServiceInterface は食事ハンドラーが必要とするサービスインターフェース。
type MealServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.Meal, error)
	Create(ctx context.Context, userID string, in meal.CreateInput) (*model.Meal, error)
	Delete(ctx context.Context, userID, mealID string) error
}

// MealHandler は食事記録のHTTPハンドラー。
type MealHandler struct {
	service MealServiceInterface
	metrics DomainMetricsRecorder
}

// NewMealHandler はMealHandlerを生成する。
func NewMealHandler(service MealServiceInterface, recorder DomainMetricsRecorder) *MealHandler {
	return &MealHandler{
		service: service,
		metrics: recorderOrNop(recorder),
	}
}

// createMealRequest は食事作成リクエストのボディ。
// 未指定と0を区別するためprobabilityはポインタで受ける。
type createMealRequest struct {
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Probability *float64 `json:"probability"`
}

// mealResponse は食事のAPIレスポンス。
type mealResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	Probability float64   `json:"probability"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListMeals は認証ユーザーの食事一覧を返す。
// GET /api/meals
func (h *MealHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	meals, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]mealResponse, 0, len(meals))
	for _, m := range meals {
		resp = append(resp, toMealResponse(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateMeal は食事を作成する。所有者は認証ユーザーに固定される。
// POST /api/meals
func (h *MealHandler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req createMealRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeDecodeError(w, err, model.NewInvalidMealError())
		return
	}

	_, err = h.service.Create(r.Context(), userID, meal.CreateInput{
		Name:        req.Name,
		Image:       req.Image,
		Probability: req.Probability,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordMealCreated()
	writeText(w, http.StatusCreated, "Meal added successfully")
}

// DeleteMeal は認証ユーザーが所有する食事を削除する。
// DELETE /api/meals/{id}
func (h *MealHandler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	err = h.service.Delete(r.Context(), userID, chi.URLParam(r, "id"))
	switch {
	case err == nil:
	case errors.Is(err, model.ErrInvalidID):
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidIDError("meal"))
		return
	case errors.Is(err, model.ErrNotFound):
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewMealNotFoundError())
		return
	default:
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordMealDeleted()
	writeText(w, http.StatusOK, "Meal deleted successfully")
}

// toMealResponse はmodel.MealからAPIレスポンスに変換する。
func toMealResponse(m *model.Meal) mealResponse {
	return mealResponse{
		ID:          m.ID,
		Name:        m.Name,
		Image:       m.Image,
		Probability: m.Probability,
		OwnerID:     m.UserID,
		CreatedAt:   m.CreatedAt,
	}
}
