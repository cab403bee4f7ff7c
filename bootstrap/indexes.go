package bootstrap

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Fazeelit/mohafizbackend/internal/repository"
)

type index struct {
	collection string
	model      mongo.IndexModel
}

func indexes() []index {
	return []index{
		{
			collection: repository.AccountsCollection,
			model: mongo.IndexModel{
				Keys: bson.D{
					{Key: "role", Value: 1},
					{Key: "email", Value: 1},
				},
				Options: options.Index().SetUnique(true).SetName("uniq_role_email"),
			},
		},
		{
			collection: repository.BookingsCollection,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "cnic", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_cnic"),
			},
		},
		{
			collection: repository.ReportsCollection,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "trackingId", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_tracking_id"),
			},
		},
	}
}

// EnsureIndexes creates the unique indexes the repositories rely on to
// reject duplicates atomically. Creating an existing index is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, ix := range indexes() {
		if _, err := db.Collection(ix.collection).Indexes().CreateOne(ctx, ix.model); err != nil {
			return fmt.Errorf("ensure index on %s: %w", ix.collection, err)
		}
	}
	return nil
}

// MemoryUniques returns the same unique constraints in the form
// repository.NewMemoryStore takes, keyed by collection name.
func MemoryUniques() map[string][]string {
	out := map[string][]string{}
	for _, ix := range indexes() {
		keys, _ := ix.model.Keys.(bson.D)
		for _, k := range keys {
			out[ix.collection] = append(out[ix.collection], k.Key)
		}
	}
	return out
}
