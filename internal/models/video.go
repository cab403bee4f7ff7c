package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var VideoStatuses = []string{"published", "draft", "pending"}

type Video struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id" swaggertype:"string"`
	Title      string        `bson:"title" json:"title"`
	Instructor string        `bson:"instructor" json:"instructor"`
	Category   string        `bson:"category" json:"category"`
	Duration   string        `bson:"duration" json:"duration"`
	Views      int64         `bson:"views" json:"views"`
	Status     string        `bson:"status" json:"status"`
	VideoFile  string        `bson:"videoFile" json:"videoFile"`
	FileKey    string        `bson:"file_key,omitempty" json:"-"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
}
