// internal/intake/draft_test.go
package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credara/credentialing-backend/internal/models"
)

func TestNewDraftInitializesEveryKey(t *testing.T) {
	d := NewDraft("owner@example.com")

	assert.NotNil(t, d.CurrentOperatingStates)
	assert.NotNil(t, d.TargetStates)
	assert.NotNil(t, d.MedicaidMCOs)
	assert.NotNil(t, d.CommercialPayers)
	assert.NotNil(t, d.ServicesProvided)
	assert.NotNil(t, d.PrimaryProvider.CurrentLicenses)

	assert.Equal(t, "1", d.ProvidersCount)
	assert.Equal(t, "email", d.PreferredContactMethod)

	// The account email pre-populates every email field
	assert.Equal(t, "owner@example.com", d.PrimaryProvider.Email)
	assert.Equal(t, "owner@example.com", d.PracticeEmail)
	assert.Equal(t, "owner@example.com", d.ContactEmail)
}

func TestDraftSet(t *testing.T) {
	d := NewDraft("")

	require.NoError(t, d.Set("business_name", "Bright Steps ABA"))
	require.NoError(t, d.Set("has_npi", "yes"))
	require.NoError(t, d.Set("npi_type", "individual"))
	require.NoError(t, d.Set("npi_number", "1234567890"))

	assert.Equal(t, "Bright Steps ABA", d.BusinessName)
	assert.Equal(t, "yes", d.HasNPI)
	assert.Equal(t, "individual", d.NPIType)
	assert.Equal(t, "1234567890", d.NPINumber)
}

func TestDraftSetDottedPaths(t *testing.T) {
	d := NewDraft("")

	require.NoError(t, d.Set("primary_provider.full_name", "Dana Reyes"))
	require.NoError(t, d.Set("primary_provider.date_of_birth", "1988-04-12"))
	require.NoError(t, d.Set("new_state_address.street", "12 Main St"))
	require.NoError(t, d.Set("new_state_address.city", "Austin"))
	require.NoError(t, d.Set("new_state_address.zip", "78701"))

	assert.Equal(t, "Dana Reyes", d.PrimaryProvider.FullName)
	assert.Equal(t, "1988-04-12", d.PrimaryProvider.DateOfBirth)
	assert.Equal(t, "12 Main St", d.NewStateAddress.Street)
	assert.Equal(t, "Austin", d.NewStateAddress.City)
	assert.Equal(t, "78701", d.NewStateAddress.Zip)
}

func TestDraftSetUnknownPath(t *testing.T) {
	d := NewDraft("")

	assert.Error(t, d.Set("no_such_field", "x"))
	assert.Error(t, d.Set("primary_provider.no_such_field", "x"))
	assert.Error(t, d.Set("new_state_address.country", "x"))
}

func TestDraftToggle(t *testing.T) {
	d := NewDraft("")

	require.NoError(t, d.Toggle("target_states", "CA", true))
	require.NoError(t, d.Toggle("target_states", "TX", true))
	assert.Equal(t, []string{"CA", "TX"}, d.TargetStates)

	// Unchecking removes, preserving order of the rest
	require.NoError(t, d.Toggle("target_states", "CA", false))
	assert.Equal(t, []string{"TX"}, d.TargetStates)

	// Re-checking a present value is a no-op
	require.NoError(t, d.Toggle("target_states", "TX", true))
	assert.Equal(t, []string{"TX"}, d.TargetStates)

	// Unchecking an absent value is a no-op
	require.NoError(t, d.Toggle("target_states", "NV", false))
	assert.Equal(t, []string{"TX"}, d.TargetStates)
}

func TestDraftToggleNonArrayField(t *testing.T) {
	d := NewDraft("")
	assert.Error(t, d.Toggle("business_name", "x", true))
}

func TestAddLicense(t *testing.T) {
	d := NewDraft("")

	d.AddLicense("CA", "BA-1001")
	d.AddLicense("TX", "BA-2002")

	require.Len(t, d.PrimaryProvider.CurrentLicenses, 2)
	assert.Equal(t, StateLicense{State: "CA", LicenseNumber: "BA-1001"}, d.PrimaryProvider.CurrentLicenses[0])
	assert.Equal(t, StateLicense{State: "TX", LicenseNumber: "BA-2002"}, d.PrimaryProvider.CurrentLicenses[1])
}

func TestDraftFromClient(t *testing.T) {
	npi := "1234567890"
	client := &models.Client{
		BusinessName:        "Bright Steps ABA",
		CredentialingType:   "group",
		BusinessEntityType:  "llc",
		CurrentStates:       []string{"CA"},
		TargetStates:        []string{"TX", "NV"},
		Email:               "owner@example.com",
		Phone:               "555-0100",
		HasNPI:              true,
		NPIType:             "individual",
		NPIIndividual:       &npi,
		HasPhysicalLocation: "yes",
		PracticeAddressNewState: models.JSONB{
			"street": "12 Main St",
			"city":   "Austin",
			"state":  "TX",
			"zip":    "78701",
		},
	}

	d := DraftFromClient(client)

	assert.Equal(t, "Bright Steps ABA", d.BusinessName)
	assert.Equal(t, []string{"TX", "NV"}, d.TargetStates)
	assert.Equal(t, "yes", d.HasNPI)
	assert.Equal(t, "1234567890", d.NPINumber)
	assert.Equal(t, "yes", d.HasPhysicalLocation)
	assert.Equal(t, "Austin", d.NewStateAddress.City)
}
