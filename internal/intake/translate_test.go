// internal/intake/translate_test.go
package intake

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credara/credentialing-backend/internal/models"
)

func completedDraft() *Draft {
	d := NewDraft("owner@example.com")
	d.BusinessName = "Bright Steps ABA"
	d.CredentialingType = "group"
	d.BusinessEntityType = "llc"
	d.CurrentOperatingStates = []string{"CA"}
	d.TargetStates = []string{"CA", "TX"}
	d.TaxIDType = "ein"
	d.TaxID = "12-3456789"
	d.PrimaryProvider.FullName = "Dana Reyes"
	d.PrimaryProvider.DateOfBirth = "1988-04-12"
	d.PrimaryProvider.SSN = "123-45-6789"
	d.PrimaryProvider.BCBACertNumber = "1-23-45678"
	return d
}

func TestTranslateNPIIndividual(t *testing.T) {
	d := completedDraft()
	d.HasNPI = "yes"
	d.NPIType = "individual"
	d.NPINumber = "1234567890"

	plan, err := Translate(d, uuid.New())
	require.NoError(t, err)

	require.NotNil(t, plan.Client.NPIIndividual)
	assert.Equal(t, "1234567890", *plan.Client.NPIIndividual)
	assert.Nil(t, plan.Client.NPIGroup)
}

func TestTranslateNPIGroup(t *testing.T) {
	d := completedDraft()
	d.HasNPI = "yes"
	d.NPIType = "group"
	d.NPINumber = "9876543210"

	plan, err := Translate(d, uuid.New())
	require.NoError(t, err)

	require.NotNil(t, plan.Client.NPIGroup)
	assert.Equal(t, "9876543210", *plan.Client.NPIGroup)
	assert.Nil(t, plan.Client.NPIIndividual)
}

func TestTranslateNPIBothStoresNeither(t *testing.T) {
	d := completedDraft()
	d.HasNPI = "yes"
	d.NPIType = "both"
	d.NPINumber = "1234567890"

	plan, err := Translate(d, uuid.New())
	require.NoError(t, err)

	assert.Nil(t, plan.Client.NPIIndividual)
	assert.Nil(t, plan.Client.NPIGroup)
}

func TestTranslateNoNPI(t *testing.T) {
	d := completedDraft()
	d.HasNPI = "no"

	plan, err := Translate(d, uuid.New())
	require.NoError(t, err)

	assert.False(t, plan.Client.HasNPI)
	assert.Nil(t, plan.Client.NPIIndividual)
	assert.Nil(t, plan.Client.NPIGroup)
}

func TestTranslateAddressOnlyWithPhysicalLocation(t *testing.T) {
	d := completedDraft()
	d.HasPhysicalLocation = "remote"
	d.NewStateAddress = Address{Street: "12 Main St", City: "Austin", State: "TX", Zip: "78701"}

	plan, err := Translate(d, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, plan.Client.PracticeAddressNewState)

	d.HasPhysicalLocation = "yes"
	plan, err = Translate(d, uuid.New())
	require.NoError(t, err)
	require.NotNil(t, plan.Client.PracticeAddressNewState)
	assert.Equal(t, "Austin", plan.Client.PracticeAddressNewState["city"])
}

func TestTranslatePayerPriorities(t *testing.T) {
	d := completedDraft()
	d.WantsMedicaid = "yes"
	d.TargetStates = []string{"CA", "TX"}
	d.CommercialPayers = []string{"Aetna"}

	plan, err := Translate(d, uuid.New())
	require.NoError(t, err)

	require.Len(t, plan.TargetPayers, 3)

	assert.Equal(t, "CA Medicaid", plan.TargetPayers[0].PayerName)
	assert.Equal(t, models.PayerTypeMedicaid, plan.TargetPayers[0].PayerType)
	assert.Equal(t, 1, plan.TargetPayers[0].Priority)

	assert.Equal(t, "TX Medicaid", plan.TargetPayers[1].PayerName)
	assert.Equal(t, 2, plan.TargetPayers[1].Priority)

	// Commercial rows continue numbering after the medicaid block
	assert.Equal(t, "Aetna", plan.TargetPayers[2].PayerName)
	assert.Equal(t, models.PayerTypeCommercial, plan.TargetPayers[2].PayerType)
	assert.Equal(t, 3, plan.TargetPayers[2].Priority)
}

func TestTranslateCommercialOnlyPriorities(t *testing.T) {
	d := completedDraft()
	d.WantsMedicaid = "no"
	d.CommercialPayers = []string{"Aetna", "Cigna"}

	plan, err := Translate(d, uuid.New())
	require.NoError(t, err)

	require.Len(t, plan.TargetPayers, 2)
	assert.Equal(t, 1, plan.TargetPayers[0].Priority)
	assert.Equal(t, 2, plan.TargetPayers[1].Priority)
}

func TestTranslateZeroPayersIsValid(t *testing.T) {
	d := completedDraft()
	d.WantsMedicaid = "no"

	plan, err := Translate(d, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, plan.TargetPayers)

	// The payer batch is simply omitted from the dependent writes
	for _, write := range plan.Dependents() {
		assert.NotEqual(t, CollectionTargetPayers, write.Collection)
	}
}

func TestTranslateInsuranceOmittedWithoutCoverage(t *testing.T) {
	d := completedDraft()
	d.HasProfLiability = "no"
	d.HasGenLiability = "no"

	plan, err := Translate(d, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, plan.Insurance)
}

func TestTranslateInsurancePresentWithCoverage(t *testing.T) {
	d := completedDraft()
	d.HasProfLiability = "yes"
	d.ProfLiabilityCarrier = "CM&F"
	d.ProfLiabilityExpires = "2027-01-31"

	plan, err := Translate(d, uuid.New())
	require.NoError(t, err)

	require.NotNil(t, plan.Insurance)
	assert.True(t, plan.Insurance.HasProfessionalLiability)
	require.NotNil(t, plan.Insurance.ProfLiabilityCarrier)
	assert.Equal(t, "CM&F", *plan.Insurance.ProfLiabilityCarrier)
	require.NotNil(t, plan.Insurance.ProfLiabilityExpiration)
	assert.False(t, plan.Insurance.HasGeneralLiability)
}

func TestTranslateYesNoNormalization(t *testing.T) {
	d := completedDraft()
	d.WantsMedicaid = "yes"
	d.HasCurrentCV = "yes"
	d.HasReferences = "no"
	d.HasBCBACertDocs = "yes"

	userID := uuid.New()
	plan, err := Translate(d, userID)
	require.NoError(t, err)

	assert.Equal(t, userID, plan.Client.UserID)
	assert.True(t, plan.IntakeStatus.WantsMedicaid)
	assert.True(t, plan.IntakeStatus.HasCurrentCV)
	assert.False(t, plan.IntakeStatus.HasReferences)
	assert.True(t, plan.IntakeStatus.HasBCBACertDocs)
}

func TestTranslateTimelineEventAlwaysLast(t *testing.T) {
	d := completedDraft()

	plan, err := Translate(d, uuid.New())
	require.NoError(t, err)

	writes := plan.Dependents()
	require.NotEmpty(t, writes)
	assert.Equal(t, CollectionTimeline, writes[len(writes)-1].Collection)
	assert.Equal(t, models.TimelineEventIntakeComplete, plan.Timeline.EventType)

	// Still last when every optional entity is present
	d.HasProfLiability = "yes"
	d.WantsMedicaid = "yes"
	plan, err = Translate(d, uuid.New())
	require.NoError(t, err)

	writes = plan.Dependents()
	assert.Equal(t, CollectionTimeline, writes[len(writes)-1].Collection)
}

func TestTranslateStateLicenses(t *testing.T) {
	d := completedDraft()
	d.AddLicense("CA", "BA-1001")
	d.AddLicense("TX", "BA-2002")

	plan, err := Translate(d, uuid.New())
	require.NoError(t, err)

	require.NotNil(t, plan.Provider.StateLicenses)
	rows, ok := plan.Provider.StateLicenses["licenses"].([]interface{})
	require.True(t, ok)
	assert.Len(t, rows, 2)
}

func TestTranslateClientStatus(t *testing.T) {
	plan, err := Translate(completedDraft(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, models.ClientStatusIntakeComplete, plan.Client.Status)
}

func TestTranslateBadDate(t *testing.T) {
	d := completedDraft()
	d.PrimaryProvider.DateOfBirth = "04/12/1988"

	_, err := Translate(d, uuid.New())
	assert.Error(t, err)
}
