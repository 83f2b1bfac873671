// Package auth はユーザー登録・ログイン、パスワードハッシュ、トークン発行を提供する。
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/mealtrack/internal/model"
	"github.com/hitoshi/mealtrack/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// MaxUsernameBytes はユーザー名の上限バイト数。
// ユニークインデックスのエントリ上限（約2.7KB）に収まる値にしている。
const MaxUsernameBytes = 1024

// Service は資格情報の登録とログインに関するビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	hasher   *PasswordHasher
	tokens   *TokenService
	now      func() time.Time
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, hasher *PasswordHasher, tokens *TokenService) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		now:      time.Now,
	}
}

// Register は新しいユーザーを登録し、作成したユーザーを返す。
// ユーザー名またはパスワードが空、NUL文字を含む、ユーザー名が MaxUsernameBytes を
// 超える場合はバリデーションエラー、ユーザー名が既に使われている場合は
// model.ErrDuplicateUser を返す。
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" || model.ContainsNUL(username) {
		return nil, model.NewInvalidCredentialsInputError()
	}
	if len(username) > MaxUsernameBytes {
		return nil, model.NewUsernameTooLongError(MaxUsernameBytes)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, model.NewPasswordTooLongError()
		}
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicateUser) {
			return nil, model.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("ユーザーを登録しました", slog.String("user_id", user.ID))
	return user, nil
}

// Login はユーザー名とパスワードを検証し、トークンを発行する。
// 未登録のユーザー名は model.ErrUserNotFound、
// パスワード不一致は model.ErrInvalidCredentials を返す。
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", model.NewInvalidCredentialsInputError()
	}
	// 登録時に拒否しているため、該当するユーザーは存在しない
	if len(username) > MaxUsernameBytes || model.ContainsNUL(username) {
		return "", model.ErrUserNotFound
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return "", model.ErrUserNotFound
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// VerifyToken はトークンを検証し、ユーザーIDを返す。
func (s *Service) VerifyToken(token string) (string, error) {
	return s.tokens.Verify(token)
}
