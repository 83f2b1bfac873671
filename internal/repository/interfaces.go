// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/mealtrack/internal/model"
)

// UserRepository はユーザーデータ（資格情報）の永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成する。
	// ユーザー名が重複している場合は model.ErrDuplicateUser を返し、既存レコードは変更しない。
	Create(ctx context.Context, user *model.User) error

	// FindByUsername はユーザー名でユーザーを検索する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// MealRepository は食事データの永続化インターフェース。
// すべての読み取り・削除はユーザーIDでスコープされる。
type MealRepository interface {
	// ListByUserID はユーザーの食事一覧を作成順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.Meal, error)

	// Create は食事を作成する。
	Create(ctx context.Context, meal *model.Meal) error

	// DeleteByIDAndUserID はユーザーが所有する食事を削除する。
	// 該当レコードがなかった場合はfalseを返す。
	DeleteByIDAndUserID(ctx context.Context, id, userID string) (bool, error)
}

// HistoryRepository は履歴データの永続化インターフェース。
// すべての読み取り・削除はユーザーIDでスコープされる。
type HistoryRepository interface {
	// ListByUserID はユーザーの履歴一覧をタイムスタンプ順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.HistoryEntry, error)

	// Create は履歴エントリを作成する。
	Create(ctx context.Context, entry *model.HistoryEntry) error

	// DeleteByIDAndUserID はユーザーが所有する履歴エントリを削除する。
	// 該当レコードがなかった場合はfalseを返す。
	DeleteByIDAndUserID(ctx context.Context, id, userID string) (bool, error)
}
