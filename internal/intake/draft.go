// internal/intake/draft.go
package intake

import (
	"fmt"
	"strings"

	"github.com/credara/credentialing-backend/internal/models"
)

// Address is the new-state practice address sub-record.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// StateLicense is one current license held by the primary provider.
type StateLicense struct {
	State         string `json:"state"`
	LicenseNumber string `json:"license_number"`
}

// ProviderInfo is the primary-provider section of the draft.
type ProviderInfo struct {
	FullName           string         `json:"full_name"`
	DateOfBirth        string         `json:"date_of_birth"`
	SSN                string         `json:"ssn"`
	CurrentLicenses    []StateLicense `json:"current_licenses"`
	BCBACertNumber     string         `json:"bcba_cert_number"`
	BCBACertExpiration string         `json:"bcba_cert_expiration"`
	IndividualNPI      string         `json:"individual_npi"`
	Email              string         `json:"email"`
	Phone              string         `json:"phone"`
}

// Draft holds the in-progress intake answers for one form session. All keys
// exist from construction; Set and Toggle mutate leaves in place. Boolean-ish
// questions are stored as the "yes"/"no" strings the form collects; they are
// normalized to booleans only by the translator.
type Draft struct {
	// Part 1: basic practice information
	CurrentOperatingStates []string `json:"current_operating_states"`
	CredentialingType      string   `json:"credentialing_type"`
	BusinessEntityType     string   `json:"business_entity_type"`
	HasNPI                 string   `json:"has_npi"`
	NPIType                string   `json:"npi_type"`
	NPINumber              string   `json:"npi_number"`
	TaxIDType              string   `json:"tax_id_type"`
	TaxID                  string   `json:"tax_id"`

	// New state expansion
	TargetStates              []string `json:"target_states"`
	HasBusinessEntityNewState string   `json:"has_business_entity_new_state"`
	HasPhysicalLocation       string   `json:"has_physical_location"`
	NewStateAddress           Address  `json:"new_state_address"`

	// Part 2: provider information
	ProvidersCount  string       `json:"providers_count"`
	PrimaryProvider ProviderInfo `json:"primary_provider"`

	// Part 3: target payers
	WantsMedicaid    string   `json:"wants_medicaid"`
	MedicaidMCOs     []string `json:"medicaid_mcos"`
	CommercialPayers []string `json:"commercial_payers"`
	PayerPriority    string   `json:"payer_priority"`

	// Part 4: current documentation status
	HasCAQH               string `json:"has_caqh"`
	CAQHUpdated           string `json:"caqh_updated"`
	CAQHID                string `json:"caqh_id"`
	HasProfLiability      string `json:"has_prof_liability"`
	ProfLiabilityCarrier  string `json:"prof_liability_carrier"`
	ProfLiabilityExpires  string `json:"prof_liability_expiration"`
	HasGenLiability       string `json:"has_gen_liability"`
	GenLiabilityCarrier   string `json:"gen_liability_carrier"`
	GenLiabilityExpires   string `json:"gen_liability_expiration"`
	HasBCBACertDocs       string `json:"has_bcba_cert_docs"`
	HasStateLicensesDocs  string `json:"has_state_licenses"`
	HasCurrentCV          string `json:"has_current_cv"`
	HasReferences         string `json:"has_references"`
	ReferencesCount       string `json:"references_count"`

	// Part 5: practice information
	BusinessName     string   `json:"business_name"`
	PracticePhone    string   `json:"practice_phone"`
	PracticeFax      string   `json:"practice_fax"`
	PracticeEmail    string   `json:"practice_email"`
	OfficeHours      string   `json:"office_hours"`
	ServicesProvided []string `json:"services_provided"`

	// Contact information
	ContactName            string `json:"contact_name"`
	ContactPhone           string `json:"contact_phone"`
	ContactEmail           string `json:"contact_email"`
	PreferredContactMethod string `json:"preferred_contact_method"`
}

// NewDraft returns an empty draft with every field initialized, so that a
// partially filled draft never lacks a key. The user's email pre-populates
// the email fields the same way the form does.
func NewDraft(userEmail string) *Draft {
	return &Draft{
		CurrentOperatingStates: []string{},
		TargetStates:           []string{},
		MedicaidMCOs:           []string{},
		CommercialPayers:       []string{},
		ServicesProvided:       []string{},
		ProvidersCount:         "1",
		PrimaryProvider: ProviderInfo{
			CurrentLicenses: []StateLicense{},
			Email:           userEmail,
		},
		PracticeEmail:          userEmail,
		ContactEmail:           userEmail,
		PreferredContactMethod: "email",
	}
}

// Set updates one leaf addressed by a dotted path, e.g.
// "primary_provider.full_name" or "new_state_address.city". Unknown paths
// return an error; the draft is never partially mutated.
func (d *Draft) Set(path, value string) error {
	if strings.HasPrefix(path, "new_state_address.") {
		return d.setAddressField(strings.TrimPrefix(path, "new_state_address."), value)
	}
	if strings.HasPrefix(path, "primary_provider.") {
		return d.setProviderField(strings.TrimPrefix(path, "primary_provider."), value)
	}

	switch path {
	case "credentialing_type":
		d.CredentialingType = value
	case "business_entity_type":
		d.BusinessEntityType = value
	case "has_npi":
		d.HasNPI = value
	case "npi_type":
		d.NPIType = value
	case "npi_number":
		d.NPINumber = value
	case "tax_id_type":
		d.TaxIDType = value
	case "tax_id":
		d.TaxID = value
	case "has_business_entity_new_state":
		d.HasBusinessEntityNewState = value
	case "has_physical_location":
		d.HasPhysicalLocation = value
	case "providers_count":
		d.ProvidersCount = value
	case "wants_medicaid":
		d.WantsMedicaid = value
	case "payer_priority":
		d.PayerPriority = value
	case "has_caqh":
		d.HasCAQH = value
	case "caqh_updated":
		d.CAQHUpdated = value
	case "caqh_id":
		d.CAQHID = value
	case "has_prof_liability":
		d.HasProfLiability = value
	case "prof_liability_carrier":
		d.ProfLiabilityCarrier = value
	case "prof_liability_expiration":
		d.ProfLiabilityExpires = value
	case "has_gen_liability":
		d.HasGenLiability = value
	case "gen_liability_carrier":
		d.GenLiabilityCarrier = value
	case "gen_liability_expiration":
		d.GenLiabilityExpires = value
	case "has_bcba_cert_docs":
		d.HasBCBACertDocs = value
	case "has_state_licenses":
		d.HasStateLicensesDocs = value
	case "has_current_cv":
		d.HasCurrentCV = value
	case "has_references":
		d.HasReferences = value
	case "references_count":
		d.ReferencesCount = value
	case "business_name":
		d.BusinessName = value
	case "practice_phone":
		d.PracticePhone = value
	case "practice_fax":
		d.PracticeFax = value
	case "practice_email":
		d.PracticeEmail = value
	case "office_hours":
		d.OfficeHours = value
	case "contact_name":
		d.ContactName = value
	case "contact_phone":
		d.ContactPhone = value
	case "contact_email":
		d.ContactEmail = value
	case "preferred_contact_method":
		d.PreferredContactMethod = value
	default:
		return fmt.Errorf("unknown draft field %q", path)
	}
	return nil
}

func (d *Draft) setAddressField(field, value string) error {
	switch field {
	case "street":
		d.NewStateAddress.Street = value
	case "city":
		d.NewStateAddress.City = value
	case "state":
		d.NewStateAddress.State = value
	case "zip":
		d.NewStateAddress.Zip = value
	default:
		return fmt.Errorf("unknown draft field %q", "new_state_address."+field)
	}
	return nil
}

func (d *Draft) setProviderField(field, value string) error {
	switch field {
	case "full_name":
		d.PrimaryProvider.FullName = value
	case "date_of_birth":
		d.PrimaryProvider.DateOfBirth = value
	case "ssn":
		d.PrimaryProvider.SSN = value
	case "bcba_cert_number":
		d.PrimaryProvider.BCBACertNumber = value
	case "bcba_cert_expiration":
		d.PrimaryProvider.BCBACertExpiration = value
	case "individual_npi":
		d.PrimaryProvider.IndividualNPI = value
	case "email":
		d.PrimaryProvider.Email = value
	case "phone":
		d.PrimaryProvider.Phone = value
	default:
		return fmt.Errorf("unknown draft field %q", "primary_provider."+field)
	}
	return nil
}

// Toggle applies checkbox semantics to an array-valued field: the value is
// added when checked and removed otherwise. Toggling an already present value
// on (or an absent one off) is a no-op.
func (d *Draft) Toggle(field, value string, checked bool) error {
	var target *[]string
	switch field {
	case "current_operating_states":
		target = &d.CurrentOperatingStates
	case "target_states":
		target = &d.TargetStates
	case "medicaid_mcos":
		target = &d.MedicaidMCOs
	case "commercial_payers":
		target = &d.CommercialPayers
	case "services_provided":
		target = &d.ServicesProvided
	default:
		return fmt.Errorf("field %q is not array-valued", field)
	}

	idx := -1
	for i, v := range *target {
		if v == value {
			idx = i
			break
		}
	}

	if checked && idx < 0 {
		*target = append(*target, value)
	} else if !checked && idx >= 0 {
		*target = append((*target)[:idx], (*target)[idx+1:]...)
	}
	return nil
}

// AddLicense appends one state license row to the primary provider section.
func (d *Draft) AddLicense(state, licenseNumber string) {
	d.PrimaryProvider.CurrentLicenses = append(d.PrimaryProvider.CurrentLicenses, StateLicense{
		State:         state,
		LicenseNumber: licenseNumber,
	})
}

// DraftFromClient pre-populates a draft from a persisted client row for edit
// mode. Satellite entities are not loaded back: edit mode only rewrites the
// client row itself.
func DraftFromClient(client *models.Client) *Draft {
	d := NewDraft(client.Email)

	d.BusinessName = client.BusinessName
	d.BusinessEntityType = client.BusinessEntityType
	d.CredentialingType = client.CredentialingType
	d.CurrentOperatingStates = append([]string{}, client.CurrentStates...)
	d.TargetStates = append([]string{}, client.TargetStates...)
	d.PracticePhone = client.Phone
	d.PracticeEmail = client.Email
	d.PracticeFax = client.Fax
	d.TaxID = client.TaxID
	d.TaxIDType = client.TaxIDType
	d.HasNPI = yesNo(client.HasNPI)
	d.NPIType = client.NPIType
	if client.NPIIndividual != nil {
		d.NPINumber = *client.NPIIndividual
	} else if client.NPIGroup != nil {
		d.NPINumber = *client.NPIGroup
	}
	d.HasBusinessEntityNewState = yesNo(client.HasBusinessEntityNewState)
	d.HasPhysicalLocation = client.HasPhysicalLocation
	if client.PracticeAddressNewState != nil {
		d.NewStateAddress = Address{
			Street: stringAt(client.PracticeAddressNewState, "street"),
			City:   stringAt(client.PracticeAddressNewState, "city"),
			State:  stringAt(client.PracticeAddressNewState, "state"),
			Zip:    stringAt(client.PracticeAddressNewState, "zip"),
		}
	}
	d.OfficeHours = client.OfficeHours
	d.ServicesProvided = append([]string{}, client.ServicesProvided...)
	d.ContactName = client.ContactName
	d.ContactPhone = client.ContactPhone
	d.ContactEmail = client.ContactEmail
	d.PreferredContactMethod = client.PreferredContactMethod

	return d
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func stringAt(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
