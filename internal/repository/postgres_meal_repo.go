package repository

import (
	"context"
	"fmt"

	"github.com/hitoshi/mealtrack/internal/model"
	"github.com/jmoiron/sqlx"
)

// PostgresMealRepo はPostgreSQLを使用した食事リポジトリ。
type PostgresMealRepo struct {
	db *sqlx.DB
}

// NewPostgresMealRepo はPostgresMealRepoを生成する。
func NewPostgresMealRepo(db *sqlx.DB) *PostgresMealRepo {
	return &PostgresMealRepo{db: db}
}

// ListByUserID はユーザーの食事一覧を作成順で返す。該当がない場合は空スライスを返す。
func (r *PostgresMealRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Meal, error) {
	meals := []*model.Meal{}
	err := r.db.SelectContext(ctx, &meals,
		`SELECT id, user_id, name, image, probability, created_at
		 FROM meals
		 WHERE user_id = $1
		 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, nil
}

// Create は食事を作成する。
func (r *PostgresMealRepo) Create(ctx context.Context, meal *model.Meal) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO meals (id, user_id, name, image, probability, created_at)
		 VALUES (:id, :user_id, :name, :image, :probability, :created_at)`,
		meal,
	)
	if err != nil {
		return fmt.Errorf("failed to insert meal: %w", err)
	}
	return nil
}

// DeleteByIDAndUserID はユーザーが所有する食事を削除する。
func (r *PostgresMealRepo) DeleteByIDAndUserID(ctx context.Context, id, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM meals WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete meal: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// compile-time interface check
var _ MealRepository = (*PostgresMealRepo)(nil)
