// internal/services/intake_service_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/credara/credentialing-backend/internal/config"
	"github.com/credara/credentialing-backend/internal/intake"
	"github.com/credara/credentialing-backend/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func newTestIntakeService(t *testing.T) (*IntakeService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newMockDB(t)
	cfg := &config.Config{}
	return NewIntakeService(db, cfg, NewNotificationService(db, cfg)), mock
}

// expectInsert matches one gorm Create: a transaction wrapping an INSERT that
// returns the generated primary keys.
func expectInsert(mock sqlmock.Sqlmock, table string, ids ...uuid.UUID) {
	rows := sqlmock.NewRows([]string{"id"})
	for _, id := range ids {
		rows.AddRow(id.String())
	}
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "` + table + `"`).WillReturnRows(rows)
	mock.ExpectCommit()
}

func startFreshSession(t *testing.T, svc *IntakeService, mock sqlmock.Sqlmock, userID uuid.UUID) {
	t.Helper()

	// No existing client row: the session starts in create mode
	mock.ExpectQuery(`SELECT \* FROM "clients"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	state, err := svc.StartSession(userID, "owner@example.com")
	require.NoError(t, err)
	require.False(t, state.Editing)
	require.Equal(t, intake.FirstStep, state.Step)
}

func advanceToReview(t *testing.T, svc *IntakeService, userID uuid.UUID) {
	t.Helper()

	var state *SessionState
	var err error
	for i := intake.FirstStep; i < intake.LastStep; i++ {
		state, err = svc.NextStep(userID)
		require.NoError(t, err)
	}
	require.True(t, state.CanSubmit)
}

func TestSetFieldValidatesValues(t *testing.T) {
	svc, mock := newTestIntakeService(t)
	userID := uuid.New()

	startFreshSession(t, svc, mock, userID)

	_, err := svc.SetField(userID, &SetFieldRequest{Path: "npi_number", Value: "abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10 digits")

	_, err = svc.SetField(userID, &SetFieldRequest{Path: "primary_provider.individual_npi", Value: "12345"})
	require.Error(t, err)

	_, err = svc.SetField(userID, &SetFieldRequest{Path: "wants_medicaid", Value: "maybe"})
	require.Error(t, err)

	// Valid values and free-form paths pass through
	state, err := svc.SetField(userID, &SetFieldRequest{Path: "npi_number", Value: "1234567890"})
	require.NoError(t, err)
	assert.Equal(t, "1234567890", state.Draft.NPINumber)

	_, err = svc.SetField(userID, &SetFieldRequest{Path: "wants_medicaid", Value: "no"})
	require.NoError(t, err)
	_, err = svc.SetField(userID, &SetFieldRequest{Path: "business_name", Value: "Bright Steps ABA"})
	require.NoError(t, err)

	// has_physical_location is yes/remote, not yes/no
	_, err = svc.SetField(userID, &SetFieldRequest{Path: "has_physical_location", Value: "remote"})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitExecutesWritePlanInOrder(t *testing.T) {
	svc, mock := newTestIntakeService(t)
	userID := uuid.New()

	startFreshSession(t, svc, mock, userID)

	_, err := svc.SetField(userID, &SetFieldRequest{Path: "business_name", Value: "Bright Steps ABA"})
	require.NoError(t, err)
	_, err = svc.SetField(userID, &SetFieldRequest{Path: "primary_provider.full_name", Value: "Dana Reyes"})
	require.NoError(t, err)
	_, err = svc.SetField(userID, &SetFieldRequest{Path: "wants_medicaid", Value: "yes"})
	require.NoError(t, err)
	_, err = svc.ToggleField(userID, &ToggleFieldRequest{Field: "target_states", Value: "CA", Checked: true})
	require.NoError(t, err)

	advanceToReview(t, svc, userID)

	clientID := uuid.New()

	// Duplicate guard first, then the ordered write sequence
	mock.ExpectQuery(`SELECT count\(\*\) FROM "clients"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	expectInsert(mock, "clients", clientID)
	expectInsert(mock, "providers", uuid.New())
	expectInsert(mock, "target_payers", uuid.New())
	expectInsert(mock, "intake_status", uuid.New())
	expectInsert(mock, "timeline_events", uuid.New())

	client, err := svc.Submit(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, clientID, client.ID)
	assert.Equal(t, models.ClientStatusIntakeComplete, client.Status)

	// The session is consumed by a successful submission
	_, err = svc.GetSession(userID)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitRejectsDuplicate(t *testing.T) {
	svc, mock := newTestIntakeService(t)
	userID := uuid.New()

	startFreshSession(t, svc, mock, userID)
	advanceToReview(t, svc, userID)

	// A client row appeared between session start and submit
	mock.ExpectQuery(`SELECT count\(\*\) FROM "clients"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Submit(context.Background(), userID)
	assert.True(t, errors.Is(err, ErrAlreadySubmitted))

	// Nothing was written and the session survives for a retry
	_, err = svc.GetSession(userID)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitRequiresReviewStep(t *testing.T) {
	svc, mock := newTestIntakeService(t)
	userID := uuid.New()

	startFreshSession(t, svc, mock, userID)

	_, err := svc.Submit(context.Background(), userID)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitCompensatesOnFailure(t *testing.T) {
	svc, mock := newTestIntakeService(t)
	userID := uuid.New()

	startFreshSession(t, svc, mock, userID)

	_, err := svc.SetField(userID, &SetFieldRequest{Path: "wants_medicaid", Value: "yes"})
	require.NoError(t, err)
	_, err = svc.ToggleField(userID, &ToggleFieldRequest{Field: "target_states", Value: "CA", Checked: true})
	require.NoError(t, err)

	advanceToReview(t, svc, userID)

	clientID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "clients"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	expectInsert(mock, "clients", clientID)
	expectInsert(mock, "providers", uuid.New())

	// The payer batch fails mid-sequence
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "target_payers"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	// Compensation deletes the completed writes in reverse order, then the
	// client row itself
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "providers" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "clients" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err = svc.Submit(context.Background(), userID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target_payers")

	// The session survives a failed submission
	_, err = svc.GetSession(userID)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitEditModeUpdatesClientOnly(t *testing.T) {
	svc, mock := newTestIntakeService(t)
	userID := uuid.New()
	clientID := uuid.New()

	// An existing client row puts the session in edit mode
	mock.ExpectQuery(`SELECT \* FROM "clients"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "user_id", "email", "business_name", "status"}).
			AddRow(clientID.String(), userID.String(), "owner@example.com", "Bright Steps ABA", "in_progress"))

	state, err := svc.StartSession(userID, "owner@example.com")
	require.NoError(t, err)
	require.True(t, state.Editing)
	assert.Equal(t, "Bright Steps ABA", state.Draft.BusinessName)

	_, err = svc.SetField(userID, &SetFieldRequest{Path: "business_name", Value: "Bright Steps ABA LLC"})
	require.NoError(t, err)

	advanceToReview(t, svc, userID)

	// Edit mode re-reads the row and issues a single update; no satellite
	// writes happen
	mock.ExpectQuery(`SELECT \* FROM "clients"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "user_id", "status"}).
			AddRow(clientID.String(), userID.String(), "in_progress"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "clients" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	client, err := svc.Submit(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, clientID, client.ID)
	assert.Equal(t, models.ClientStatusIntakeComplete, client.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}
