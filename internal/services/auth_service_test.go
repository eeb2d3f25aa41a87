// internal/services/auth_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credara/credentialing-backend/internal/config"
	"github.com/credara/credentialing-backend/internal/utils"
)

func newTestAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()

	utils.SetJWTSecret("test-secret")

	db, mock := newMockDB(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{AccessTokenTTL: 1, RefreshTokenTTL: 24},
	}
	return NewAuthService(db, cfg), mock
}

func TestAcceptInvitationCreatesUserAndMarksInvitation(t *testing.T) {
	svc, mock := newTestAuthService(t)
	invitationID := uuid.New()
	token := "a3f1c2d4e5b6978812345678901234567890abcdef1234567890abcdef123456"

	mock.ExpectQuery(`SELECT \* FROM "invitations"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "email", "token", "role", "status", "expires_at", "invited_by"}).
			AddRow(invitationID.String(), "owner@example.com", token, "client", "pending",
				time.Now().Add(24*time.Hour), uuid.New().String()))

	// No user registered with that email yet
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// User creation and invitation acceptance commit together
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnRows(
		sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectExec(`UPDATE "invitations" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.AcceptInvitation(&AcceptInvitationRequest{
		Token:    token,
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)

	assert.Equal(t, "owner@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptInvitationRejectsExpiredToken(t *testing.T) {
	svc, mock := newTestAuthService(t)
	token := "b4e2d3c5f6a7089923456789012345678901bcdef2345678901bcdef2345678"

	mock.ExpectQuery(`SELECT \* FROM "invitations"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "email", "token", "role", "status", "expires_at", "invited_by"}).
			AddRow(uuid.New().String(), "owner@example.com", token, "client", "pending",
				time.Now().Add(-time.Hour), uuid.New().String()))

	// The stale row is flagged expired
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "invitations" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := svc.AcceptInvitation(&AcceptInvitationRequest{
		Token:    token,
		Password: "Sup3rSecret!",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")

	assert.NoError(t, mock.ExpectationsWereMet())
}
