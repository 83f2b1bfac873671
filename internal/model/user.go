// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// PasswordHash はbcryptハッシュのみを保持し、生のパスワードは保持しない。
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
