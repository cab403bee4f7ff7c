package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var BookStatuses = []string{"available", "unavailable", "active", "inactive"}

type Book struct {
	ID        bson.ObjectID  `bson:"_id,omitempty" json:"id" swaggertype:"string"`
	Title     string         `bson:"title" json:"title"`
	Author    string         `bson:"author" json:"author"`
	Category  string         `bson:"category" json:"category"`
	Language  string         `bson:"language" json:"language"`
	FileURL   string         `bson:"file" json:"fileUrl"`
	FileKey   string         `bson:"file_key,omitempty" json:"-"`
	Downloads int64          `bson:"downloads" json:"downloads"`
	Status    string         `bson:"status" json:"status"`
	CreatedBy *bson.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty" swaggertype:"string"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}
