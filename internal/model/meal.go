package model

import "time"

// Meal はユーザーが記録した食事（画像と推定確率）を表す。
// UserID は常に認証済みユーザーから設定され、クライアント入力は信用しない。
type Meal struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Name        string    `db:"name"`
	Image       string    `db:"image"`
	Probability float64   `db:"probability"`
	CreatedAt   time.Time `db:"created_at"`
}
