package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var ReportStatuses = []string{"Pending", "In Progress", "Resolved"}

const DefaultReportStatus = "Pending"

type Report struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id" swaggertype:"string"`
	TrackingID    string        `bson:"trackingId" json:"trackingId"`
	ComplaintType string        `bson:"complaintType" json:"complaintType"`
	Anonymous     bool          `bson:"anonymous" json:"anonymous"`
	Name          string        `bson:"name,omitempty" json:"name,omitempty"`
	Phone         string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Email         string        `bson:"email,omitempty" json:"email,omitempty"`
	VictimName    string        `bson:"victimName" json:"victimName"`
	VictimAge     int           `bson:"victimAge" json:"victimAge"`
	Address       string        `bson:"address" json:"address"`
	District      string        `bson:"district" json:"district"`
	Description   string        `bson:"description" json:"description"`
	Files         []string      `bson:"files" json:"files"`
	FileKeys      []string      `bson:"file_keys,omitempty" json:"-"`
	Status        string        `bson:"status" json:"status"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}
