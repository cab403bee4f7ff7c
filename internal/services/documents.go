package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Fazeelit/mohafizbackend/internal/apperr"
	"github.com/Fazeelit/mohafizbackend/internal/logging"
	"github.com/Fazeelit/mohafizbackend/internal/repository"
	"github.com/Fazeelit/mohafizbackend/internal/storage"
)

// Documents is the persistence a content service needs;
// *repository.Collection satisfies it.
type Documents[T any] interface {
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*T, error)
	FindBy(ctx context.Context, field string, value any) (*T, error)
	Insert(ctx context.Context, doc *T) error
	UpdateFields(ctx context.Context, id bson.ObjectID, set bson.M) (*T, error)
	Increment(ctx context.Context, id bson.ObjectID, field string) (*T, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) (*T, error)
}

func list[T any](ctx context.Context, docs Documents[T], what string) ([]T, error) {
	out, err := docs.List(ctx)
	if err != nil {
		return nil, apperr.Internal("list "+what, err)
	}
	return out, nil
}

func lookupErr(err error, notFound, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(notFound)
	}
	return apperr.Internal(op, err)
}

// normalizeStatus lower-cases s and falls back to def when it is not one
// of allowed.
func normalizeStatus(s string, allowed []string, def string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	return def
}

// setIf copies *v into set under key when v is non-nil.
func setIf(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}

// removeMedia deletes stored objects best-effort; failures are only logged.
func removeMedia(ctx context.Context, media storage.Uploader, log logging.Logger, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := media.Delete(ctx, key); err != nil {
			log.Warn(ctx, "remove stored media", "key", key, "error", err)
		}
	}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
