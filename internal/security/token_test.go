package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, secret string) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(TokenConfig{
		Secret:     []byte(secret),
		Issuer:     "mohafiz-backend",
		Audience:   "mohafiz-clients",
		TTLs:       map[string]time.Duration{"admin": 24 * time.Hour, "user": 7 * 24 * time.Hour},
		DefaultTTL: time.Hour,
	})
	require.NoError(t, err)
	return m
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()
	m := newManager(t, "super-secret-value")

	tok, exp, err := m.Issue(Identity{ID: "652f0c1e9b1e8a0012345678", Name: "a", Role: "user"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, 5*time.Second)

	id, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "652f0c1e9b1e8a0012345678", id.ID)
	assert.Equal(t, "user", id.Role)
	assert.Equal(t, "a", id.Name)
}

func TestTTL_PerRole(t *testing.T) {
	t.Parallel()
	m := newManager(t, "super-secret-value")
	assert.Equal(t, 24*time.Hour, m.TTL("admin"))
	assert.Equal(t, 7*24*time.Hour, m.TTL("user"))
	assert.Equal(t, time.Hour, m.TTL("other"))
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()
	m := newManager(t, "super-secret-value")

	tok, _, err := m.IssueWithTTL(Identity{ID: "u1", Role: "admin"}, -time.Second)
	require.NoError(t, err)

	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()
	tok, _, err := newManager(t, "right-secret-value").Issue(Identity{ID: "u2", Role: "admin"})
	require.NoError(t, err)

	_, err = newManager(t, "wrong-secret-value").Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()
	m := newManager(t, "super-secret-value")
	for _, s := range []string{"", "not.a.jwt", "abc"} {
		_, err := m.Verify(s)
		assert.ErrorIs(t, err, ErrInvalidToken, s)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()
	m := newManager(t, "super-secret-value")

	claims := Claims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u3",
		Issuer:    "mohafiz-backend",
		Audience:  jwt.ClaimStrings{"mohafiz-clients"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("super-secret-value"))
	require.NoError(t, err)
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Verify(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongAudienceOrIssuer(t *testing.T) {
	t.Parallel()
	m := newManager(t, "super-secret-value")
	other, err := NewTokenManager(TokenConfig{
		Secret: []byte("super-secret-value"), Issuer: "someone-else", Audience: "mohafiz-clients", DefaultTTL: time.Hour,
	})
	require.NoError(t, err)
	tok, _, err := other.Issue(Identity{ID: "u4", Role: "admin"})
	require.NoError(t, err)
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err = NewTokenManager(TokenConfig{
		Secret: []byte("super-secret-value"), Issuer: "mohafiz-backend", Audience: "elsewhere", DefaultTTL: time.Hour,
	})
	require.NoError(t, err)
	tok, _, err = other.Issue(Identity{ID: "u4", Role: "admin"})
	require.NoError(t, err)
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingRoleOrSubject(t *testing.T) {
	t.Parallel()
	m := newManager(t, "super-secret-value")

	tok, _, err := m.Issue(Identity{ID: "u5"})
	require.NoError(t, err)
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	tok, _, err = m.Issue(Identity{Role: "user"})
	require.NoError(t, err)
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManager_Validation(t *testing.T) {
	_, err := NewTokenManager(TokenConfig{DefaultTTL: time.Hour})
	assert.Error(t, err)
	_, err = NewTokenManager(TokenConfig{Secret: []byte("x")})
	assert.Error(t, err)
}
