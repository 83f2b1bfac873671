package auth

import (
	"errors"
	"fmt"

	"github.com/hitoshi/mealtrack/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher はbcryptによるパスワードのハッシュ化と照合を行う。
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher はPasswordHasherを生成する。
// bcryptの許容範囲外のコストが指定された場合は bcrypt.DefaultCost を使用する。
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Cost は使用するbcryptコストを返す。
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash はパスワードのbcryptハッシュを返す。
// 72バイトを超えるパスワードは bcrypt.ErrPasswordTooLong を返す。
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare はハッシュとパスワードを照合する。
// 一致しない場合は model.ErrInvalidCredentials を返す。
func (h *PasswordHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return model.ErrInvalidCredentials
	}
	return fmt.Errorf("failed to compare password: %w", err)
}
