package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Fazeelit/mohafizbackend/internal/models"
)

func newAccountRepo() *AccountRepository {
	return NewAccountRepository(NewMemoryStore[models.Account]([]string{"role", "email"}))
}

func account(role models.Role, email string) *models.Account {
	return &models.Account{
		Username:       "someone",
		Email:          email,
		PasswordHash:   "$2a$04$hash",
		Role:           role,
		Status:         models.StatusActive,
		ProfilePicture: models.DefaultProfilePicture,
	}
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := newAccountRepo()

	acc := account(models.RoleUser, "  Alice@Example.COM ")
	require.NoError(t, repo.Create(ctx, acc))
	assert.False(t, acc.ID.IsZero())
	assert.Equal(t, "alice@example.com", acc.Email)
	assert.False(t, acc.CreatedAt.IsZero())

	got, err := repo.FindByEmail(ctx, models.RoleUser, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)
	assert.Equal(t, "$2a$04$hash", got.PasswordHash)

	got, err = repo.FindByID(ctx, models.RoleUser, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestAccountRepository_RoleScoped(t *testing.T) {
	ctx := context.Background()
	repo := newAccountRepo()

	user := account(models.RoleUser, "same@example.com")
	require.NoError(t, repo.Create(ctx, user))

	// same email under another role is a different account
	require.NoError(t, repo.Create(ctx, account(models.RoleAdmin, "same@example.com")))

	_, err := repo.FindByID(ctx, models.RoleAdmin, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := repo.DeleteByID(ctx, models.RoleAdmin, user.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := newAccountRepo()

	require.NoError(t, repo.Create(ctx, account(models.RoleUser, "dup@example.com")))
	err := repo.Create(ctx, account(models.RoleUser, "DUP@example.com"))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestAccountRepository_UpdateByID(t *testing.T) {
	ctx := context.Background()
	repo := newAccountRepo()

	acc := account(models.RoleUser, "bob@example.com")
	require.NoError(t, repo.Create(ctx, acc))

	name := "Bob"
	status := models.StatusInactive
	updated, err := repo.UpdateByID(ctx, models.RoleUser, acc.ID, models.AccountPatch{Username: &name, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Bob", updated.Username)
	assert.Equal(t, models.StatusInactive, updated.Status)
	assert.Equal(t, "bob@example.com", updated.Email)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	_, err = repo.UpdateByID(ctx, models.RoleUser, bson.NewObjectID(), models.AccountPatch{Username: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountRepository_UpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	repo := newAccountRepo()

	acc := account(models.RoleAdmin, "root@example.com")
	require.NoError(t, repo.Create(ctx, acc))
	require.NoError(t, repo.UpdatePasswordHash(ctx, models.RoleAdmin, acc.ID, "$2a$04$other"))

	got, err := repo.FindByEmail(ctx, models.RoleAdmin, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, "$2a$04$other", got.PasswordHash)

	err = repo.UpdatePasswordHash(ctx, models.RoleAdmin, bson.NewObjectID(), "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newAccountRepo()

	first := account(models.RoleUser, "first@example.com")
	second := account(models.RoleUser, "second@example.com")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, account(models.RoleAdmin, "admin@example.com")))

	users, err := repo.List(ctx, models.RoleUser)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, second.ID, users[0].ID, "newest first")

	deleted, err := repo.DeleteByID(ctx, models.RoleUser, first.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	users, err = repo.List(ctx, models.RoleUser)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
