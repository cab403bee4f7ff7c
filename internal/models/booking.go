package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	Qualifications  = []string{"matric", "FA", "BA", "MA", "MS", "Phd"}
	BookingServices = []string{"Child Counseling", "Emergency Helpline", "Awareness Workshop", "On-Site Support"}
	BookingStatuses = []string{"Pending", "Completed"}
)

type Booking struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id" swaggertype:"string"`
	Name          string        `bson:"name" json:"name"`
	FatherName    string        `bson:"fname" json:"fname"`
	CNIC          string        `bson:"cnic" json:"cnic"`
	Phone         string        `bson:"phone" json:"phone"`
	WhatsApp      string        `bson:"whatsapp" json:"whatsapp"`
	Qualification string        `bson:"qualification" json:"qualification"`
	Service       string        `bson:"service" json:"service"`
	Address       string        `bson:"address" json:"address"`
	Province      string        `bson:"province" json:"province"`
	Division      string        `bson:"division" json:"division"`
	District      string        `bson:"district" json:"district"`
	Tehsil        string        `bson:"tehsil" json:"tehsil"`
	Status        string        `bson:"status" json:"status"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}
