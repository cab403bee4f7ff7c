package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newHasher(t *testing.T) *BcryptHasher {
	t.Helper()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	t.Parallel()
	h := newHasher(t)

	for _, pw := range []string{"secret123", "pässwörd", " spaced out ", "x"} {
		hash, err := h.Hash(pw)
		require.NoError(t, err)
		assert.NotEqual(t, pw, hash)
		assert.True(t, h.Verify(pw, hash))
		assert.False(t, h.Verify(pw+"!", hash))
		assert.False(t, h.Verify("", hash))
	}
}

func TestBcryptHasher_SaltsEveryHash(t *testing.T) {
	t.Parallel()
	h := newHasher(t)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	t.Parallel()
	h, err := NewBcryptHasher(10)
	require.NoError(t, err)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestBcryptHasher_TooLong(t *testing.T) {
	t.Parallel()
	h := newHasher(t)

	_, err := h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestBcryptHasher_VerifyGarbageHash(t *testing.T) {
	t.Parallel()
	h := newHasher(t)
	assert.False(t, h.Verify("secret123", "not-a-hash"))
	assert.False(t, h.Verify("secret123", ""))
}

func TestNewBcryptHasher_Range(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)
	_, err = NewBcryptHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}
