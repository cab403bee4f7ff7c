package utils

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var errNilOid = errors.New("the zero ObjectID is not a document id")

// Oid parses a 24-character hex ObjectID. The zero id is rejected since no
// document is ever stored under it.
func Oid(hex string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return bson.NilObjectID, err
	}
	if id.IsZero() {
		return bson.NilObjectID, errNilOid
	}
	return id, nil
}

// OidPtr is Oid for optional references: nil when hex is not a valid id.
func OidPtr(hex string) *bson.ObjectID {
	id, err := Oid(hex)
	if err != nil {
		return nil
	}
	return &id
}
