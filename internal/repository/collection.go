package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Mongo collection names for the content resources.
const (
	BooksCollection       = "books"
	VideosCollection      = "videos"
	EmergenciesCollection = "emergencies"
	BookingsCollection    = "bookings"
	NewsCollection        = "news"
	ReportsCollection     = "reports"
	HelplineCollection    = "helplines"
)

// Collection is id-addressed CRUD over a Store. Callers set ID and
// timestamps before Insert; updates maintain updatedAt.
type Collection[T any] struct {
	store Store[T]
	now   func() time.Time
}

func NewCollection[T any](store Store[T]) *Collection[T] {
	return &Collection[T]{store: store, now: time.Now}
}

// List returns every document, newest first. Never nil.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	return c.store.Find(ctx, bson.M{})
}

func (c *Collection[T]) FindByID(ctx context.Context, id bson.ObjectID) (*T, error) {
	return c.store.FindOne(ctx, bson.M{"_id": id})
}

// FindBy returns the first document whose field equals value.
func (c *Collection[T]) FindBy(ctx context.Context, field string, value any) (*T, error) {
	return c.store.FindOne(ctx, bson.M{field: value})
}

func (c *Collection[T]) Insert(ctx context.Context, doc *T) error {
	return c.store.Insert(ctx, doc)
}

// UpdateFields applies set with $set and returns the updated document.
func (c *Collection[T]) UpdateFields(ctx context.Context, id bson.ObjectID, set bson.M) (*T, error) {
	return c.store.UpdateOne(ctx, bson.M{"_id": id}, touch(set, c.now().UTC()), nil)
}

// Increment atomically adds one to field and returns the updated document.
func (c *Collection[T]) Increment(ctx context.Context, id bson.ObjectID, field string) (*T, error) {
	return c.store.UpdateOne(ctx, bson.M{"_id": id}, touch(nil, c.now().UTC()), bson.M{field: int64(1)})
}

// DeleteByID removes the document and returns it so attached media can be
// cleaned up.
func (c *Collection[T]) DeleteByID(ctx context.Context, id bson.ObjectID) (*T, error) {
	return c.store.DeleteOne(ctx, bson.M{"_id": id})
}
