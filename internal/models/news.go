package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var NewsCategories = []string{"announcements", "events", "campaigns", "policies", "success", "workshops", "all"}

const (
	DefaultNewsCategory = "all"
	DefaultNewsIcon     = "FileText"
	DefaultNewsColor    = "#3B82F6"
	DefaultNewsLink     = "#"
)

type News struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id" swaggertype:"string"`
	Title       string        `bson:"title" json:"title"`
	Category    string        `bson:"category" json:"category"`
	Date        time.Time     `bson:"date" json:"date"`
	Description string        `bson:"description" json:"description"`
	Icon        string        `bson:"icon" json:"icon"`
	Color       string        `bson:"color" json:"color"`
	Link        string        `bson:"link" json:"link"`
	Image       string        `bson:"image,omitempty" json:"image,omitempty"`
	ImageKey    string        `bson:"image_key,omitempty" json:"-"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}
