package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL はトークンのデフォルト有効期間。
const DefaultTokenTTL = time.Hour

// トークン検証エラー。認証ミドルウェアはどちらも401として扱う。
var (
	// ErrTokenInvalid は署名不正・形式不正・アルゴリズム不一致などを表す。
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired は署名は正しいが有効期限を過ぎていることを表す。
	ErrTokenExpired = errors.New("token expired")
)

// Claims はトークンに含めるクレーム。
// ユーザーIDは "id" クレームに格納する。
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenService はHS256署名のベアラートークンを発行・検証する。
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService はTokenServiceを生成する。
// ttlが0以下の場合は DefaultTokenTTL を使用する。
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL はトークンの有効期間を返す。
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue はユーザーIDを含むトークンを発行する。有効期限は発行時刻+TTL。
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンを検証し、含まれるユーザーIDを返す。
// 期限切れは ErrTokenExpired、それ以外の検証失敗は ErrTokenInvalid を返す。
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid || claims.UserID == "" {
		return "", ErrTokenInvalid
	}
	return claims.UserID, nil
}
