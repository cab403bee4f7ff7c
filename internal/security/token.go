package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers bad signatures, expiry, wrong issuer/audience and
// malformed payloads alike; callers never need to tell them apart.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is what a token asserts about its bearer.
type Identity struct {
	ID   string
	Name string
	Role string
}

// Claims is the JWT payload.
type Claims struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	Secret   []byte
	Issuer   string
	Audience string
	// TTLs maps a role to its token lifetime; roles without an entry get DefaultTTL.
	TTLs       map[string]time.Duration
	DefaultTTL time.Duration
}

// TokenManager issues and verifies HS256 tokens.
type TokenManager struct {
	cfg TokenConfig
	now func() time.Time
}

func NewTokenManager(cfg TokenConfig) (*TokenManager, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	if cfg.DefaultTTL <= 0 {
		return nil, errors.New("default token ttl must be positive")
	}
	return &TokenManager{cfg: cfg, now: time.Now}, nil
}

// TTL returns the lifetime of tokens issued for role.
func (m *TokenManager) TTL(role string) time.Duration {
	if ttl, ok := m.cfg.TTLs[role]; ok && ttl > 0 {
		return ttl
	}
	return m.cfg.DefaultTTL
}

// Issue signs a token for id, valid for the role's TTL.
func (m *TokenManager) Issue(id Identity) (string, time.Time, error) {
	return m.IssueWithTTL(id, m.TTL(id.Role))
}

func (m *TokenManager) IssueWithTTL(id Identity, ttl time.Duration) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(ttl)

	claims := Claims{
		Role: id.Role,
		Name: id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	if m.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{m.cfg.Audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks signature, algorithm, expiry, issuer and audience.
func (m *TokenManager) Verify(tokenStr string) (Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.now),
	}
	if m.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.cfg.Issuer))
	}
	if m.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(m.cfg.Audience))
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return m.cfg.Secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	if claims.Subject == "" || claims.Role == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{ID: claims.Subject, Name: claims.Name, Role: claims.Role}, nil
}
