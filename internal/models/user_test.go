// internal/models/user_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPasswordHashing(t *testing.T) {
	user := &User{Email: "owner@example.com"}

	require.NoError(t, user.SetPassword("Sup3rSecret!"))
	assert.NotEqual(t, "Sup3rSecret!", user.PasswordHash)

	assert.NoError(t, user.CheckPassword("Sup3rSecret!"))
	assert.Error(t, user.CheckPassword("wrong"))
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: UserRoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: UserRoleClient}).IsAdmin())
}

func TestInvitationExpired(t *testing.T) {
	assert.False(t, (&Invitation{ExpiresAt: time.Now().Add(time.Hour)}).Expired())
	assert.True(t, (&Invitation{ExpiresAt: time.Now().Add(-time.Hour)}).Expired())
}
