// Package meal は食事記録のドメインロジックを提供する。
package meal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/mealtrack/internal/model"
	"github.com/hitoshi/mealtrack/internal/repository"
)

// CreateInput は食事作成の入力値。
// Probability はリクエストに含まれていたかを区別するためポインタで受け取る。
type CreateInput struct {
	Name        string
	Image       string
	Probability *float64
}

// Service は食事記録のサービス層。
// すべての操作は呼び出し元ユーザーの所有データに限定される。
type Service struct {
	repo repository.MealRepository
	now  func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.MealRepository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// List はユーザーの食事一覧を返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.Meal, error) {
	meals, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("食事一覧の取得に失敗しました: %w", err)
	}
	if meals == nil {
		meals = []*model.Meal{}
	}
	return meals, nil
}

// Create は食事を作成する。所有者は常にuserIDで上書きされる。
// name・imageが空またはNUL文字を含む場合、probabilityが無い場合はバリデーションエラーを返す。
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*model.Meal, error) {
	if in.Name == "" || in.Image == "" || in.Probability == nil ||
		model.ContainsNUL(in.Name) || model.ContainsNUL(in.Image) {
		return nil, model.NewInvalidMealError()
	}

	meal := &model.Meal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        in.Name,
		Image:       in.Image,
		Probability: *in.Probability,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, meal); err != nil {
		return nil, fmt.Errorf("食事の作成に失敗しました: %w", err)
	}

	slog.Debug("meal created",
		slog.String("user_id", userID),
		slog.String("meal_id", meal.ID),
	)
	return meal, nil
}

// Delete はユーザーが所有する食事を削除する。
// IDの形式が不正な場合は model.ErrInvalidID、
// 該当がない（他ユーザーの所有を含む）場合は model.ErrNotFound を返す。
func (s *Service) Delete(ctx context.Context, userID, mealID string) error {
	id, err := uuid.Parse(mealID)
	if err != nil {
		return model.ErrInvalidID
	}

	// 表記ゆれ（波括弧・ハイフンなし等）は正規形に揃えてから問い合わせる
	deleted, err := s.repo.DeleteByIDAndUserID(ctx, id.String(), userID)
	if err != nil {
		return fmt.Errorf("食事の削除に失敗しました: %w", err)
	}
	if !deleted {
		return model.ErrNotFound
	}
	return nil
}
