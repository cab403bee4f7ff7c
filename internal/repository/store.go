// Package repository is the persistence layer. Store is the narrow set of
// document operations the repositories need; MongoStore backs it in
// production and MemoryStore in tests.
package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Store holds documents of type T. Find returns newest first. UpdateOne
// applies set ($set) and inc ($inc) to the first match and returns the
// updated document. DeleteOne returns the removed document.
type Store[T any] interface {
	Find(ctx context.Context, filter bson.M) ([]T, error)
	FindOne(ctx context.Context, filter bson.M) (*T, error)
	Insert(ctx context.Context, doc *T) error
	UpdateOne(ctx context.Context, filter, set, inc bson.M) (*T, error)
	DeleteOne(ctx context.Context, filter bson.M) (*T, error)
}

func touch(set bson.M, now time.Time) bson.M {
	if set == nil {
		set = bson.M{}
	}
	set["updatedAt"] = now
	return set
}
