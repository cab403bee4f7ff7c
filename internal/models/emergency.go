package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	DefaultEmergencyLocation = "Unknown location"
	DefaultEmergencyDetails  = "Hello! I have an emergency"
	DefaultEmergencyPriority = "Normal"
	DefaultEmergencyStatus   = "Pending"
)

type Emergency struct {
	ID            bson.ObjectID  `bson:"_id,omitempty" json:"id" swaggertype:"string"`
	EmergencyType string         `bson:"emergencyType" json:"emergencyType"`
	Location      string         `bson:"location" json:"location"`
	FullAddress   string         `bson:"fullAddress" json:"fullAddress"`
	CurrentDate   *time.Time     `bson:"currentDate,omitempty" json:"currentDate,omitempty"`
	CurrentTime   string         `bson:"currentTime,omitempty" json:"currentTime,omitempty"`
	Details       string         `bson:"details" json:"details"`
	Priority      string         `bson:"priority" json:"priority"`
	Status        string         `bson:"status" json:"status"`
	ReportedBy    *bson.ObjectID `bson:"reportedBy,omitempty" json:"reportedBy,omitempty" swaggertype:"string"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`
}
