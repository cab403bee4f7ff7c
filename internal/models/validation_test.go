package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"a@x.com", "first.last+tag@sub.example.org", "A_B%c@x.io"} {
		assert.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{"", "a@x", "@x.com", "a x@x.com", "a@x.c", "a@@x.com"} {
		assert.False(t, ValidEmail(bad), bad)
	}
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("03001234567"))
	assert.True(t, ValidPhone("923001234567890"))
	assert.False(t, ValidPhone("12345"))
	assert.False(t, ValidPhone("+923001234567"))
	assert.False(t, ValidPhone("9230012345678901"))
}

func TestAccountPatch_Fields(t *testing.T) {
	assert.True(t, AccountPatch{}.Empty())
	assert.Empty(t, AccountPatch{}.Fields())

	name := "n"
	status := StatusInactive
	p := AccountPatch{Username: &name, Status: &status}
	assert.False(t, p.Empty())
	assert.Equal(t, map[string]any{"username": "n", "status": StatusInactive}, map[string]any(p.Fields()))
}

func TestOneOf(t *testing.T) {
	assert.True(t, OneOf("Phd", Qualifications))
	assert.False(t, OneOf("phd", Qualifications))
}
