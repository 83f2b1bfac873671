package auth

import (
	"testing"

	"github.com/hitoshi/mealtrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher_CostBounds(t *testing.T) {
	assert.Equal(t, 12, NewPasswordHasher(12).Cost())
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).Cost())
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(bcrypt.MaxCost+1).Cost())
}

func TestPasswordHasher_HashAndCompare(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, h.Compare(hash, "s3cret"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), model.ErrInvalidCredentials)
}

// 同じパスワードでもソルトによりハッシュが毎回異なること
func TestPasswordHasher_SaltedHashes(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	h1, err := h.Hash("same")
	require.NoError(t, err)
	h2, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestPasswordHasher_CompareMalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	err := h.Compare("not-a-hash", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrInvalidCredentials)
}
