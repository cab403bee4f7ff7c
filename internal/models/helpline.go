package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Helpline struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id" swaggertype:"string"`
	Name      string        `bson:"name" json:"name"`
	Phone     string        `bson:"phone" json:"phone"`
	Email     string        `bson:"email" json:"email"`
	Subject   string        `bson:"subject" json:"subject"`
	Message   string        `bson:"message" json:"message"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
