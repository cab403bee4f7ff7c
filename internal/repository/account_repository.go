package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Fazeelit/mohafizbackend/internal/models"
)

const AccountsCollection = "accounts"

// AccountRepository is the credential store. Every lookup is scoped to a
// role so a user id can never address an admin record and vice versa.
type AccountRepository struct {
	store Store[models.Account]
	now   func() time.Time
}

func NewAccountRepository(store Store[models.Account]) *AccountRepository {
	return &AccountRepository{store: store, now: time.Now}
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *AccountRepository) FindByEmail(ctx context.Context, role models.Role, email string) (*models.Account, error) {
	return r.store.FindOne(ctx, bson.M{"role": role, "email": NormalizeEmail(email)})
}

func (r *AccountRepository) FindByID(ctx context.Context, role models.Role, id bson.ObjectID) (*models.Account, error) {
	return r.store.FindOne(ctx, bson.M{"_id": id, "role": role})
}

func (r *AccountRepository) List(ctx context.Context, role models.Role) ([]models.Account, error) {
	return r.store.Find(ctx, bson.M{"role": role})
}

// Create assigns the id and timestamps and inserts the account.
func (r *AccountRepository) Create(ctx context.Context, acc *models.Account) error {
	now := r.now().UTC()
	if acc.ID.IsZero() {
		acc.ID = bson.NewObjectID()
	}
	acc.Email = NormalizeEmail(acc.Email)
	acc.CreatedAt = now
	acc.UpdatedAt = now
	return r.store.Insert(ctx, acc)
}

func (r *AccountRepository) UpdateByID(ctx context.Context, role models.Role, id bson.ObjectID, patch models.AccountPatch) (*models.Account, error) {
	set := touch(patch.Fields(), r.now().UTC())
	return r.store.UpdateOne(ctx, bson.M{"_id": id, "role": role}, set, nil)
}

func (r *AccountRepository) UpdatePasswordHash(ctx context.Context, role models.Role, id bson.ObjectID, hash string) error {
	set := touch(bson.M{"password_hash": hash}, r.now().UTC())
	_, err := r.store.UpdateOne(ctx, bson.M{"_id": id, "role": role}, set, nil)
	return err
}

// DeleteByID reports false when no account matched.
func (r *AccountRepository) DeleteByID(ctx context.Context, role models.Role, id bson.ObjectID) (bool, error) {
	_, err := r.store.DeleteOne(ctx, bson.M{"_id": id, "role": role})
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
