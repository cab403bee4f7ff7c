package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/apperr"
	"github.com/Fazeelit/mohafizbackend/internal/logging"
	"github.com/Fazeelit/mohafizbackend/internal/metrics"
	"github.com/Fazeelit/mohafizbackend/internal/models"
	"github.com/Fazeelit/mohafizbackend/internal/repository"
	"github.com/Fazeelit/mohafizbackend/internal/security"
)

type accountFixture struct {
	svc     *AccountService
	repo    *repository.AccountRepository
	tokens  *security.TokenManager
	metrics *metrics.Metrics
}

func newAccountFixture(t *testing.T) accountFixture {
	t.Helper()
	hasher, err := security.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := security.NewTokenManager(security.TokenConfig{
		Secret:     []byte("0123456789abcdef0123456789abcdef"),
		Issuer:     "mohafiz-backend",
		Audience:   "mohafiz-clients",
		TTLs:       map[string]time.Duration{"user": 7 * 24 * time.Hour, "admin": 24 * time.Hour},
		DefaultTTL: time.Hour,
	})
	require.NoError(t, err)

	repo := repository.NewAccountRepository(repository.NewMemoryStore[models.Account]([]string{"role", "email"}))
	m := metrics.New()
	svc, err := NewAccountService(repo, hasher, tokens, m, logging.Nop())
	require.NoError(t, err)
	return accountFixture{svc: svc, repo: repo, tokens: tokens, metrics: m}
}

func kindOf(t *testing.T, err error) apperr.Kind {
	t.Helper()
	require.Error(t, err)
	return apperr.KindOf(err)
}

func signUp(t *testing.T, f accountFixture, role models.Role, email, password string) *models.Account {
	t.Helper()
	acc, err := f.svc.SignUp(context.Background(), role, dto.SignUpRequest{Username: "a", Email: email, Password: password})
	require.NoError(t, err)
	return acc
}

func TestSignUp_HashesAndHidesPassword(t *testing.T) {
	f := newAccountFixture(t)

	acc := signUp(t, f, models.RoleUser, "a@x.com", "secret123")
	assert.Equal(t, models.RoleUser, acc.Role)
	assert.Equal(t, models.StatusActive, acc.Status)
	assert.Equal(t, models.DefaultProfilePicture, acc.ProfilePicture)
	assert.NotEqual(t, "secret123", acc.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("secret123")))

	body, err := json.Marshal(acc)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret123")
	assert.NotContains(t, string(body), acc.PasswordHash)
}

func TestSignUp_DuplicateEmailPerRole(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	signUp(t, f, models.RoleUser, "a@x.com", "secret123")

	_, err := f.svc.SignUp(ctx, models.RoleUser, dto.SignUpRequest{Username: "b", Email: "A@X.com", Password: "other"})
	assert.Equal(t, apperr.KindConflict, kindOf(t, err))
	e, _ := apperr.As(err)
	assert.Equal(t, "Email already exists", e.Message)

	// the admin namespace is separate
	signUp(t, f, models.RoleAdmin, "a@x.com", "secret123")
}

func TestSignUp_ConcurrentSameEmail(t *testing.T) {
	f := newAccountFixture(t)
	const n = 16

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		conflict int
		other    []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.SignUp(context.Background(), models.RoleUser,
				dto.SignUpRequest{Username: "a", Email: "A@x.com", Password: "secret123"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case apperr.KindOf(err) == apperr.KindConflict:
				conflict++
				if e, ok := apperr.As(err); ok {
					assert.Equal(t, "Email already exists", e.Message)
				}
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, conflict)
	assert.Empty(t, other)

	accounts, err := f.repo.List(context.Background(), models.RoleUser)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

// staleLookup misses on FindByEmail, as a signup that lost the race sees it.
type staleLookup struct {
	*repository.AccountRepository
}

func (staleLookup) FindByEmail(context.Context, models.Role, string) (*models.Account, error) {
	return nil, repository.ErrNotFound
}

func TestSignUp_DuplicateOnInsertIsConflict(t *testing.T) {
	f := newAccountFixture(t)
	signUp(t, f, models.RoleUser, "a@x.com", "secret123")

	hasher, err := security.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	svc, err := NewAccountService(staleLookup{f.repo}, hasher, f.tokens, f.metrics, logging.Nop())
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), models.RoleUser,
		dto.SignUpRequest{Username: "b", Email: "a@x.com", Password: "other123"})
	assert.Equal(t, apperr.KindConflict, kindOf(t, err))
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "Email already exists", e.Message)
}

func TestSignUp_Validation(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	_, err := f.svc.SignUp(ctx, models.RoleUser, dto.SignUpRequest{Username: "a", Email: "bad", Password: "p"})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))

	_, err = f.svc.SignUp(ctx, models.RoleUser, dto.SignUpRequest{Username: "a", Email: "a@x.com", Password: string(make([]byte, 73))})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
}

func TestLogin_IssuesTokenWithRole(t *testing.T) {
	f := newAccountFixture(t)
	acc := signUp(t, f, models.RoleAdmin, "root@x.com", "secret123")

	res, err := f.svc.Login(context.Background(), models.RoleAdmin, dto.LoginRequest{Email: "ROOT@x.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, acc.ID, res.User.ID)

	id, err := f.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", id.Role)
	assert.Equal(t, acc.ID.Hex(), id.ID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), res.ExpiresAt, time.Minute)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AuthSuccesses.WithLabelValues("admin")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TokenGenerations.WithLabelValues("admin")))
}

func TestLogin_UnknownEmailAndWrongPasswordLookTheSame(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	signUp(t, f, models.RoleUser, "a@x.com", "secret123")

	_, errWrong := f.svc.Login(ctx, models.RoleUser, dto.LoginRequest{Email: "a@x.com", Password: "wrong"})
	_, errUnknown := f.svc.Login(ctx, models.RoleUser, dto.LoginRequest{Email: "nobody@x.com", Password: "secret123"})

	for _, err := range []error{errWrong, errUnknown} {
		e, ok := apperr.As(err)
		require.True(t, ok)
		assert.Equal(t, apperr.KindUnauthenticated, e.Kind)
		assert.Equal(t, "Invalid email or password", e.Message)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.AuthFailures.WithLabelValues("user")))
}

func TestLogin_WrongRoleNamespace(t *testing.T) {
	f := newAccountFixture(t)
	signUp(t, f, models.RoleUser, "a@x.com", "secret123")

	_, err := f.svc.Login(context.Background(), models.RoleAdmin, dto.LoginRequest{Email: "a@x.com", Password: "secret123"})
	assert.Equal(t, apperr.KindUnauthenticated, kindOf(t, err))
}

func TestLogin_InactiveAccount(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	acc := signUp(t, f, models.RoleUser, "a@x.com", "secret123")

	inactive := "inactive"
	_, err := f.svc.Update(ctx, models.RoleUser, acc.ID, dto.UpdateAccountRequest{Status: &inactive})
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, models.RoleUser, dto.LoginRequest{Email: "a@x.com", Password: "secret123"})
	assert.Equal(t, apperr.KindForbidden, kindOf(t, err))

	// a wrong password on an inactive account still reads as bad credentials
	_, err = f.svc.Login(ctx, models.RoleUser, dto.LoginRequest{Email: "a@x.com", Password: "nope"})
	assert.Equal(t, apperr.KindUnauthenticated, kindOf(t, err))
}

func TestResetPassword(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	signUp(t, f, models.RoleUser, "a@x.com", "secret123")

	req := func(email, old, next, confirm string) dto.ResetPasswordRequest {
		return dto.ResetPasswordRequest{Email: email, OldPassword: old, NewPassword: next, ConfirmPassword: confirm}
	}
	tests := []struct {
		name    string
		req     dto.ResetPasswordRequest
		kind    apperr.Kind
		message string
	}{
		{"missing field", req("a@x.com", "", "n", "n"), apperr.KindValidation, "Validation error"},
		{"mismatch", req("a@x.com", "secret123", "n1", "n2"), apperr.KindValidation, "New password and confirm password do not match"},
		{"no account", req("b@x.com", "secret123", "n", "n"), apperr.KindNotFound, "User not found with this email"},
		{"wrong old", req("a@x.com", "bad", "n", "n"), apperr.KindUnauthenticated, "Old password is incorrect"},
		{"same as old", req("a@x.com", "secret123", "secret123", "secret123"), apperr.KindValidation, "New password must be different from the old password"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := f.svc.ResetPassword(ctx, models.RoleUser, tc.req)
			e, ok := apperr.As(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tc.kind, e.Kind)
			assert.Equal(t, tc.message, e.Message)
		})
	}

	require.NoError(t, f.svc.ResetPassword(ctx, models.RoleUser, req("a@x.com", "secret123", "newsecret", "newsecret")))

	_, err := f.svc.Login(ctx, models.RoleUser, dto.LoginRequest{Email: "a@x.com", Password: "secret123"})
	assert.Equal(t, apperr.KindUnauthenticated, kindOf(t, err))
	_, err = f.svc.Login(ctx, models.RoleUser, dto.LoginRequest{Email: "a@x.com", Password: "newsecret"})
	assert.NoError(t, err)
}

func TestAccountManagement(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	acc := signUp(t, f, models.RoleUser, "a@x.com", "secret123")

	users, err := f.svc.List(ctx, models.RoleUser)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	admins, err := f.svc.List(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Empty(t, admins)

	phone := "03001234567"
	updated, err := f.svc.Update(ctx, models.RoleUser, acc.ID, dto.UpdateAccountRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, acc.PasswordHash, updated.PasswordHash)

	_, err = f.svc.Update(ctx, models.RoleUser, acc.ID, dto.UpdateAccountRequest{})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))

	_, err = f.svc.Update(ctx, models.RoleAdmin, acc.ID, dto.UpdateAccountRequest{Phone: &phone})
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))

	got, err := f.svc.Get(ctx, models.RoleUser, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)

	require.NoError(t, f.svc.Delete(ctx, models.RoleUser, acc.ID))
	err = f.svc.Delete(ctx, models.RoleUser, acc.ID)
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))

	_, err = f.svc.Get(ctx, models.RoleUser, bson.NewObjectID())
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
}

type failingStore struct{ AccountStore }

func (failingStore) FindByEmail(context.Context, models.Role, string) (*models.Account, error) {
	return nil, errors.New("connection reset")
}

func TestLogin_StoreFailureIsInternal(t *testing.T) {
	f := newAccountFixture(t)
	f.svc.accounts = failingStore{}

	_, err := f.svc.Login(context.Background(), models.RoleUser, dto.LoginRequest{Email: "a@x.com", Password: "p"})
	assert.Equal(t, apperr.KindInternal, kindOf(t, err))
}
