package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
)

func (s AccountStatus) Valid() bool { return s == StatusActive || s == StatusInactive }

const DefaultProfilePicture = "default.jpg"

// Account is a credentialed identity stored in "accounts". Users and admins
// share the collection; Role tells them apart and is never client-settable.
type Account struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"id" swaggertype:"string"`
	Username       string        `bson:"username" json:"username"`
	Email          string        `bson:"email" json:"email"`
	PasswordHash   string        `bson:"password_hash" json:"-"`
	Role           Role          `bson:"role" json:"role"`
	Status         AccountStatus `bson:"status" json:"status"`
	ProfilePicture string        `bson:"profile_picture" json:"profilePicture"`
	Address        string        `bson:"address,omitempty" json:"address,omitempty"`
	Phone          string        `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// AccountPatch is the allow-list of fields an admin may change on an account.
// Nil pointers are left untouched.
type AccountPatch struct {
	Username       *string
	Address        *string
	Phone          *string
	ProfilePicture *string
	Status         *AccountStatus
}

func (p AccountPatch) Empty() bool {
	return p.Username == nil && p.Address == nil && p.Phone == nil &&
		p.ProfilePicture == nil && p.Status == nil
}

// Fields renders the patch as a $set document.
func (p AccountPatch) Fields() bson.M {
	set := bson.M{}
	if p.Username != nil {
		set["username"] = *p.Username
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if p.Phone != nil {
		set["phone"] = *p.Phone
	}
	if p.ProfilePicture != nil {
		set["profile_picture"] = *p.ProfilePicture
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	return set
}
