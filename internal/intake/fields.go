// internal/intake/fields.go
package intake

// Field describes one input the wizard shows on a step.
type Field struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

// fieldRule is one row of the visibility table: the field appears on its step
// when the predicate (nil means always) holds for the current draft.
type fieldRule struct {
	step     int
	name     string
	required bool
	when     func(*Draft) bool
}

func wantsGroup(d *Draft) bool      { return d.CredentialingType == "group" }
func hasNPI(d *Draft) bool          { return d.HasNPI == "yes" }
func hasLocation(d *Draft) bool     { return d.HasPhysicalLocation == "yes" }
func hasCAQH(d *Draft) bool         { return d.HasCAQH == "yes" }
func hasProfLiability(d *Draft) bool { return d.HasProfLiability == "yes" }
func wantsMedicaid(d *Draft) bool   { return d.WantsMedicaid == "yes" }
func multipleProviders(d *Draft) bool {
	return d.ProvidersCount != "" && d.ProvidersCount != "1"
}

// fieldTable is the full visibility table for the six steps. It mirrors the
// intake form question order.
var fieldTable = []fieldRule{
	// Step 1: basic practice information
	{step: StepPracticeInfo, name: "current_operating_states", required: true},
	{step: StepPracticeInfo, name: "credentialing_type", required: true},
	{step: StepPracticeInfo, name: "business_entity_type", required: true, when: wantsGroup},
	{step: StepPracticeInfo, name: "has_npi", required: true},
	{step: StepPracticeInfo, name: "npi_type", required: true, when: hasNPI},
	{step: StepPracticeInfo, name: "npi_number", required: true, when: hasNPI},
	{step: StepPracticeInfo, name: "tax_id_type", required: true},
	{step: StepPracticeInfo, name: "tax_id", required: true},
	{step: StepPracticeInfo, name: "target_states", required: true},
	{step: StepPracticeInfo, name: "has_business_entity_new_state", required: true},
	{step: StepPracticeInfo, name: "has_physical_location", required: true},
	{step: StepPracticeInfo, name: "new_state_address.street", when: hasLocation},
	{step: StepPracticeInfo, name: "new_state_address.city", when: hasLocation},
	{step: StepPracticeInfo, name: "new_state_address.zip", when: hasLocation},

	// Step 2: provider information
	{step: StepProvider, name: "providers_count", required: true},
	{step: StepProvider, name: "primary_provider.full_name", required: true},
	{step: StepProvider, name: "primary_provider.date_of_birth", required: true},
	{step: StepProvider, name: "primary_provider.ssn", required: true},
	{step: StepProvider, name: "primary_provider.bcba_cert_number", required: true},
	{step: StepProvider, name: "primary_provider.bcba_cert_expiration"},
	{step: StepProvider, name: "primary_provider.individual_npi"},
	{step: StepProvider, name: "primary_provider.email", required: true},
	{step: StepProvider, name: "primary_provider.phone", required: true},
	{step: StepProvider, name: "additional_providers_notice", when: multipleProviders},

	// Step 3: target payers. The MCO option list is supplied out of band per
	// target state; only the field's presence is decided here.
	{step: StepPayers, name: "wants_medicaid", required: true},
	{step: StepPayers, name: "medicaid_mcos", when: wantsMedicaid},
	{step: StepPayers, name: "commercial_payers", when: wantsMedicaid},
	{step: StepPayers, name: "payer_priority"},

	// Step 4: current documentation status
	{step: StepDocuments, name: "has_caqh", required: true},
	{step: StepDocuments, name: "caqh_updated", required: true, when: hasCAQH},
	{step: StepDocuments, name: "caqh_id", when: hasCAQH},
	{step: StepDocuments, name: "has_prof_liability", required: true},
	{step: StepDocuments, name: "prof_liability_carrier", when: hasProfLiability},
	{step: StepDocuments, name: "prof_liability_expiration", when: hasProfLiability},
	{step: StepDocuments, name: "has_gen_liability", required: true},
	{step: StepDocuments, name: "has_bcba_cert_docs", required: true},
	{step: StepDocuments, name: "has_state_licenses", required: true},
	{step: StepDocuments, name: "has_current_cv", required: true},
	{step: StepDocuments, name: "has_references", required: true},

	// Step 5: practice information
	{step: StepPractice, name: "business_name", required: true},
	{step: StepPractice, name: "practice_phone", required: true},
	{step: StepPractice, name: "practice_fax"},
	{step: StepPractice, name: "practice_email", required: true},
	{step: StepPractice, name: "office_hours"},
	{step: StepPractice, name: "services_provided"},
	{step: StepPractice, name: "contact_name", required: true},
	{step: StepPractice, name: "contact_phone", required: true},
	{step: StepPractice, name: "contact_email", required: true},
	{step: StepPractice, name: "preferred_contact_method"},
}

// VisibleFields evaluates the rule table against the current draft and
// returns the fields shown on a step, in form order. The draft is never
// mutated; callers re-evaluate after every draft change.
func VisibleFields(step int, d *Draft) []Field {
	var fields []Field
	for _, rule := range fieldTable {
		if rule.step != step {
			continue
		}
		if rule.when != nil && !rule.when(d) {
			continue
		}
		fields = append(fields, Field{Name: rule.name, Required: rule.required})
	}
	return fields
}

// RequiredFields returns just the names of the required visible fields for a
// step, which is what the rendering layer enforces before advancing.
func RequiredFields(step int, d *Draft) []string {
	var names []string
	for _, f := range VisibleFields(step, d) {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}
