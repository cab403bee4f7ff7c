package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type timeoutStore[T any] struct {
	next    Store[T]
	timeout time.Duration
}

// WithTimeout bounds every call on s by d, independent of how long the
// surrounding request is allowed to run.
func WithTimeout[T any](s Store[T], d time.Duration) Store[T] {
	return &timeoutStore[T]{next: s, timeout: d}
}

func (s *timeoutStore[T]) Find(ctx context.Context, filter bson.M) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Find(ctx, filter)
}

func (s *timeoutStore[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.FindOne(ctx, filter)
}

func (s *timeoutStore[T]) Insert(ctx context.Context, doc *T) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Insert(ctx, doc)
}

func (s *timeoutStore[T]) UpdateOne(ctx context.Context, filter, set, inc bson.M) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.UpdateOne(ctx, filter, set, inc)
}

func (s *timeoutStore[T]) DeleteOne(ctx context.Context, filter bson.M) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.DeleteOne(ctx, filter)
}
