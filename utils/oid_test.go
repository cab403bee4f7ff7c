package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestOid(t *testing.T) {
	id := bson.NewObjectID()

	got, err := Oid(" " + id.Hex() + " ")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	for _, bad := range []string{"", "xyz", "000000000000000000000000", id.Hex() + "00"} {
		_, err := Oid(bad)
		assert.Error(t, err, bad)
	}
}

func TestOidPtr(t *testing.T) {
	id := bson.NewObjectID()
	require.NotNil(t, OidPtr(id.Hex()))
	assert.Equal(t, id, *OidPtr(id.Hex()))
	assert.Nil(t, OidPtr("nope"))
}
