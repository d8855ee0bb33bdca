package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_AuditExternalID(t *testing.T) {
	user := &User{ExternalID: "3f1b-42"}

	assert.Equal(t, "clouddoctor-3f1b-42", user.AuditExternalID())
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleUser.IsValid())
	assert.False(t, Role("SUPERUSER").IsValid())
}
