package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/apperr"
	"github.com/Fazeelit/mohafizbackend/internal/logging"
	"github.com/Fazeelit/mohafizbackend/internal/metrics"
	"github.com/Fazeelit/mohafizbackend/internal/models"
	"github.com/Fazeelit/mohafizbackend/internal/repository"
	"github.com/Fazeelit/mohafizbackend/internal/security"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgEmailExists        = "Email already exists"
)

type AccountStore interface {
	FindByEmail(ctx context.Context, role models.Role, email string) (*models.Account, error)
	FindByID(ctx context.Context, role models.Role, id bson.ObjectID) (*models.Account, error)
	List(ctx context.Context, role models.Role) ([]models.Account, error)
	Create(ctx context.Context, acc *models.Account) error
	UpdateByID(ctx context.Context, role models.Role, id bson.ObjectID, patch models.AccountPatch) (*models.Account, error)
	UpdatePasswordHash(ctx context.Context, role models.Role, id bson.ObjectID, hash string) error
	DeleteByID(ctx context.Context, role models.Role, id bson.ObjectID) (bool, error)
}

type TokenIssuer interface {
	Issue(id security.Identity) (string, time.Time, error)
}

// AccountService owns the credential lifecycle for both roles.
type AccountService struct {
	accounts AccountStore
	hasher   security.PasswordHasher
	tokens   TokenIssuer
	metrics  *metrics.Metrics
	log      logging.Logger

	// dummyHash is compared against when the email is unknown so a miss
	// costs the same bcrypt work as a wrong password.
	dummyHash string
}

func NewAccountService(accounts AccountStore, hasher security.PasswordHasher, tokens TokenIssuer, m *metrics.Metrics, log logging.Logger) (*AccountService, error) {
	dummy, err := hasher.Hash("no-such-account")
	if err != nil {
		return nil, err
	}
	return &AccountService{
		accounts:  accounts,
		hasher:    hasher,
		tokens:    tokens,
		metrics:   m,
		log:       log,
		dummyHash: dummy,
	}, nil
}

func label(role models.Role) string {
	if role == models.RoleAdmin {
		return "Admin"
	}
	return "User"
}

func (s *AccountService) hash(password string) (string, error) {
	h, err := s.hasher.Hash(password)
	if errors.Is(err, security.ErrPasswordTooLong) {
		return "", apperr.Validation("Validation error", "password must be at most 72 bytes")
	}
	if err != nil {
		return "", apperr.Internal("hash password", err)
	}
	return h, nil
}

// SignUp creates an active account of the given role. The role comes from
// the endpoint, never from the request.
func (s *AccountService) SignUp(ctx context.Context, role models.Role, req dto.SignUpRequest) (*models.Account, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}

	switch _, err := s.accounts.FindByEmail(ctx, role, req.Email); {
	case err == nil:
		return nil, apperr.Conflict(msgEmailExists)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperr.Internal("find account by email", err)
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	acc := &models.Account{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   hash,
		Role:           role,
		Status:         models.StatusActive,
		ProfilePicture: models.DefaultProfilePicture,
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict(msgEmailExists)
		}
		return nil, apperr.Internal("create account", err)
	}

	s.log.Info(ctx, "account created", "role", role, "id", acc.ID.Hex())
	return acc, nil
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords fail identically.
func (s *AccountService) Login(ctx context.Context, role models.Role, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}
	method := string(role)

	acc, err := s.accounts.FindByEmail(ctx, role, req.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Internal("find account by email", err)
		}
		s.hasher.Verify(req.Password, s.dummyHash)
		s.metrics.AuthFailures.WithLabelValues(method).Inc()
		return nil, apperr.Unauthenticated(msgInvalidCredentials)
	}
	if !s.hasher.Verify(req.Password, acc.PasswordHash) {
		s.metrics.AuthFailures.WithLabelValues(method).Inc()
		return nil, apperr.Unauthenticated(msgInvalidCredentials)
	}
	if acc.Status == models.StatusInactive {
		s.metrics.AuthFailures.WithLabelValues(method).Inc()
		return nil, apperr.Forbidden("Account is inactive")
	}

	token, exp, err := s.tokens.Issue(security.Identity{
		ID:   acc.ID.Hex(),
		Name: acc.Username,
		Role: string(acc.Role),
	})
	if err != nil {
		return nil, apperr.Internal("issue token", err)
	}
	s.metrics.AuthSuccesses.WithLabelValues(method).Inc()
	s.metrics.TokenGenerations.WithLabelValues(method).Inc()

	return &dto.LoginResponse{Token: token, ExpiresAt: exp, User: *acc}, nil
}

// ResetPassword replaces the password of the account with req.Email after
// checking the old one.
func (s *AccountService) ResetPassword(ctx context.Context, role models.Role, req dto.ResetPasswordRequest) error {
	if err := dto.Validate(&req); err != nil {
		return err
	}
	if req.NewPassword != req.ConfirmPassword {
		return apperr.Validation("New password and confirm password do not match")
	}

	acc, err := s.accounts.FindByEmail(ctx, role, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(label(role) + " not found with this email")
		}
		return apperr.Internal("find account by email", err)
	}
	if !s.hasher.Verify(req.OldPassword, acc.PasswordHash) {
		return apperr.Unauthenticated("Old password is incorrect")
	}
	if s.hasher.Verify(req.NewPassword, acc.PasswordHash) {
		return apperr.Validation("New password must be different from the old password")
	}

	hash, err := s.hash(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdatePasswordHash(ctx, role, acc.ID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(label(role) + " not found with this email")
		}
		return apperr.Internal("update password", err)
	}

	s.log.Info(ctx, "password changed", "role", role, "id", acc.ID.Hex())
	return nil
}

func (s *AccountService) List(ctx context.Context, role models.Role) ([]models.Account, error) {
	accounts, err := s.accounts.List(ctx, role)
	if err != nil {
		return nil, apperr.Internal("list accounts", err)
	}
	return accounts, nil
}

func (s *AccountService) Get(ctx context.Context, role models.Role, id bson.ObjectID) (*models.Account, error) {
	acc, err := s.accounts.FindByID(ctx, role, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(label(role) + " not found")
		}
		return nil, apperr.Internal("find account", err)
	}
	return acc, nil
}

// Update applies the allow-listed fields of req.
func (s *AccountService) Update(ctx context.Context, role models.Role, id bson.ObjectID, req dto.UpdateAccountRequest) (*models.Account, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}
	patch := req.Patch()
	if patch.Empty() {
		return nil, apperr.Validation("No updatable fields provided")
	}

	acc, err := s.accounts.UpdateByID(ctx, role, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(label(role) + " not found")
		}
		return nil, apperr.Internal("update account", err)
	}
	return acc, nil
}

func (s *AccountService) Delete(ctx context.Context, role models.Role, id bson.ObjectID) error {
	deleted, err := s.accounts.DeleteByID(ctx, role, id)
	if err != nil {
		return apperr.Internal("delete account", err)
	}
	if !deleted {
		return apperr.NotFound(label(role) + " not found")
	}
	s.log.Info(ctx, "account deleted", "role", role, "id", id.Hex())
	return nil
}
