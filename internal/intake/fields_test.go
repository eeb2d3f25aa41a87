// internal/intake/fields_test.go
package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fieldNames(fields []Field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

func TestEntityTypeOnlyForGroupCredentialing(t *testing.T) {
	d := NewDraft("")

	d.CredentialingType = "individual"
	assert.NotContains(t, fieldNames(VisibleFields(StepPracticeInfo, d)), "business_entity_type")

	d.CredentialingType = "group"
	assert.Contains(t, fieldNames(VisibleFields(StepPracticeInfo, d)), "business_entity_type")
}

func TestNPIFieldsOnlyWhenHasNPI(t *testing.T) {
	d := NewDraft("")

	names := fieldNames(VisibleFields(StepPracticeInfo, d))
	assert.NotContains(t, names, "npi_type")
	assert.NotContains(t, names, "npi_number")

	d.HasNPI = "yes"
	names = fieldNames(VisibleFields(StepPracticeInfo, d))
	assert.Contains(t, names, "npi_type")
	assert.Contains(t, names, "npi_number")
}

func TestAddressFieldsOnlyWithPhysicalLocation(t *testing.T) {
	d := NewDraft("")

	d.HasPhysicalLocation = "remote"
	assert.NotContains(t, fieldNames(VisibleFields(StepPracticeInfo, d)), "new_state_address.street")

	d.HasPhysicalLocation = "yes"
	names := fieldNames(VisibleFields(StepPracticeInfo, d))
	assert.Contains(t, names, "new_state_address.street")
	assert.Contains(t, names, "new_state_address.city")
	assert.Contains(t, names, "new_state_address.zip")
}

func TestCAQHFieldsOnlyWhenHasCAQH(t *testing.T) {
	d := NewDraft("")

	names := fieldNames(VisibleFields(StepDocuments, d))
	assert.NotContains(t, names, "caqh_updated")
	assert.NotContains(t, names, "caqh_id")

	d.HasCAQH = "yes"
	names = fieldNames(VisibleFields(StepDocuments, d))
	assert.Contains(t, names, "caqh_updated")
	assert.Contains(t, names, "caqh_id")
}

func TestLiabilityDetailFieldsOnlyWhenCovered(t *testing.T) {
	d := NewDraft("")

	names := fieldNames(VisibleFields(StepDocuments, d))
	assert.NotContains(t, names, "prof_liability_carrier")

	d.HasProfLiability = "yes"
	names = fieldNames(VisibleFields(StepDocuments, d))
	assert.Contains(t, names, "prof_liability_carrier")
	assert.Contains(t, names, "prof_liability_expiration")
}

func TestPayerFieldsGatedOnMedicaid(t *testing.T) {
	d := NewDraft("")

	names := fieldNames(VisibleFields(StepPayers, d))
	assert.Contains(t, names, "wants_medicaid")
	assert.NotContains(t, names, "medicaid_mcos")
	assert.NotContains(t, names, "commercial_payers")

	d.WantsMedicaid = "yes"
	names = fieldNames(VisibleFields(StepPayers, d))
	assert.Contains(t, names, "medicaid_mcos")
	assert.Contains(t, names, "commercial_payers")
}

func TestAdditionalProvidersNotice(t *testing.T) {
	d := NewDraft("")

	// Default single provider: no notice
	assert.NotContains(t, fieldNames(VisibleFields(StepProvider, d)), "additional_providers_notice")

	d.ProvidersCount = "3"
	assert.Contains(t, fieldNames(VisibleFields(StepProvider, d)), "additional_providers_notice")
}

func TestRequiredFields(t *testing.T) {
	d := NewDraft("")

	required := RequiredFields(StepPracticeInfo, d)
	assert.Contains(t, required, "current_operating_states")
	assert.Contains(t, required, "tax_id")
	assert.NotContains(t, required, "npi_type")

	// Conditional fields become required once visible
	d.HasNPI = "yes"
	required = RequiredFields(StepPracticeInfo, d)
	assert.Contains(t, required, "npi_type")
	assert.Contains(t, required, "npi_number")
}

func TestReviewStepHasNoFields(t *testing.T) {
	d := NewDraft("")
	assert.Empty(t, VisibleFields(StepReview, d))
}
