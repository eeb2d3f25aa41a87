// internal/intake/translate.go
package intake

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/credara/credentialing-backend/internal/models"
)

// Collection names targeted by a write plan, in execution order.
const (
	CollectionClients      = "clients"
	CollectionProviders    = "providers"
	CollectionInsurance    = "insurance_information"
	CollectionTargetPayers = "target_payers"
	CollectionIntakeStatus = "intake_status"
	CollectionTimeline     = "timeline_events"
)

// WritePlan is the ordered multi-entity payload a submitted draft translates
// into. The client row is written first; every dependent payload carries a
// zero ClientID until the executor binds the identifier produced by that
// first write. The timeline event is always last and always present.
type WritePlan struct {
	Client       models.Client
	Provider     models.Provider
	Insurance    *models.InsuranceInformation
	TargetPayers []models.TargetPayer
	IntakeStatus models.IntakeStatus
	Timeline     models.TimelineEvent
}

// EntityWrite names one dependent write for logging and compensation.
type EntityWrite struct {
	Collection string
	Payload    interface{}
}

// Dependents lists the writes that follow the client insert, in order.
// Omitted entities (insurance, empty payer batch) do not appear.
func (p *WritePlan) Dependents() []EntityWrite {
	writes := []EntityWrite{{Collection: CollectionProviders, Payload: &p.Provider}}
	if p.Insurance != nil {
		writes = append(writes, EntityWrite{Collection: CollectionInsurance, Payload: p.Insurance})
	}
	if len(p.TargetPayers) > 0 {
		writes = append(writes, EntityWrite{Collection: CollectionTargetPayers, Payload: p.TargetPayers})
	}
	writes = append(writes,
		EntityWrite{Collection: CollectionIntakeStatus, Payload: &p.IntakeStatus},
		EntityWrite{Collection: CollectionTimeline, Payload: &p.Timeline},
	)
	return writes
}

// Translate maps a completed draft into a write plan for the given portal
// user. The "yes"/"no" strings the form collects are normalized to booleans
// here and nowhere else.
func Translate(d *Draft, userID uuid.UUID) (*WritePlan, error) {
	dob, err := parseDate(d.PrimaryProvider.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("invalid date of birth: %w", err)
	}
	certExp, err := parseDate(d.PrimaryProvider.BCBACertExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid certification expiration: %w", err)
	}

	plan := &WritePlan{
		Client: translateClient(d, userID),
		Provider: models.Provider{
			FullName:           d.PrimaryProvider.FullName,
			DateOfBirth:        dob,
			SSN:                d.PrimaryProvider.SSN,
			Email:              d.PrimaryProvider.Email,
			Phone:              d.PrimaryProvider.Phone,
			BCBACertNumber:     d.PrimaryProvider.BCBACertNumber,
			BCBACertExpiration: certExp,
			IndividualNPI:      d.PrimaryProvider.IndividualNPI,
			CAQHID:             optional(d.CAQHID),
			HasCAQH:            isYes(d.HasCAQH),
			CAQHUpdated:        isYes(d.CAQHUpdated),
			HasCurrentCV:       isYes(d.HasCurrentCV),
			HasReferences:      isYes(d.HasReferences),
			StateLicenses:      translateLicenses(d.PrimaryProvider.CurrentLicenses),
		},
		IntakeStatus: models.IntakeStatus{
			HasBCBACertDocs:  isYes(d.HasBCBACertDocs),
			HasStateLicenses: isYes(d.HasStateLicensesDocs),
			HasCurrentCV:     isYes(d.HasCurrentCV),
			HasReferences:    isYes(d.HasReferences),
			WantsMedicaid:    isYes(d.WantsMedicaid),
			CommercialPayers: pq.StringArray(d.CommercialPayers),
			PayerPriority:    d.PayerPriority,
		},
		Timeline: models.TimelineEvent{
			EventType:   models.TimelineEventIntakeComplete,
			Description: "Client completed initial intake form",
		},
	}

	plan.Insurance, err = translateInsurance(d)
	if err != nil {
		return nil, err
	}
	plan.TargetPayers = translatePayers(d)

	return plan, nil
}

func translateClient(d *Draft, userID uuid.UUID) models.Client {
	client := models.Client{
		UserID:                    userID,
		BusinessName:              d.BusinessName,
		BusinessEntityType:        d.BusinessEntityType,
		CredentialingType:         d.CredentialingType,
		CurrentStates:             pq.StringArray(d.CurrentOperatingStates),
		TargetStates:              pq.StringArray(d.TargetStates),
		Phone:                     d.PracticePhone,
		Email:                     d.PracticeEmail,
		Fax:                       d.PracticeFax,
		TaxID:                     d.TaxID,
		TaxIDType:                 d.TaxIDType,
		HasNPI:                    isYes(d.HasNPI),
		NPIType:                   d.NPIType,
		HasBusinessEntityNewState: isYes(d.HasBusinessEntityNewState),
		HasPhysicalLocation:       d.HasPhysicalLocation,
		OfficeHours:               d.OfficeHours,
		ServicesProvided:          pq.StringArray(d.ServicesProvided),
		ContactName:               d.ContactName,
		ContactPhone:              d.ContactPhone,
		ContactEmail:              d.ContactEmail,
		PreferredContactMethod:    d.PreferredContactMethod,
		Status:                    models.ClientStatusIntakeComplete,
	}

	// The NPI number lands in exactly one column, selected by npi_type; the
	// other column stays null. A "both" answer stores neither.
	switch d.NPIType {
	case "individual":
		client.NPIIndividual = optional(d.NPINumber)
	case "group":
		client.NPIGroup = optional(d.NPINumber)
	}

	if d.HasPhysicalLocation == "yes" {
		client.PracticeAddressNewState = models.JSONB{
			"street": d.NewStateAddress.Street,
			"city":   d.NewStateAddress.City,
			"state":  d.NewStateAddress.State,
			"zip":    d.NewStateAddress.Zip,
		}
	}

	return client
}

// translateInsurance returns nil when neither liability flag is "yes": no
// empty insurance row is ever written.
func translateInsurance(d *Draft) (*models.InsuranceInformation, error) {
	if !isYes(d.HasProfLiability) && !isYes(d.HasGenLiability) {
		return nil, nil
	}

	profExp, err := parseDate(d.ProfLiabilityExpires)
	if err != nil {
		return nil, fmt.Errorf("invalid professional liability expiration: %w", err)
	}
	genExp, err := parseDate(d.GenLiabilityExpires)
	if err != nil {
		return nil, fmt.Errorf("invalid general liability expiration: %w", err)
	}

	return &models.InsuranceInformation{
		HasProfessionalLiability: isYes(d.HasProfLiability),
		ProfLiabilityCarrier:     optional(d.ProfLiabilityCarrier),
		ProfLiabilityExpiration:  profExp,
		HasGeneralLiability:      isYes(d.HasGenLiability),
		GenLiabilityCarrier:      optional(d.GenLiabilityCarrier),
		GenLiabilityExpiration:   genExp,
	}, nil
}

// translatePayers derives the target-payer rows. Medicaid rows come first,
// one per target state, numbered 1..N; commercial rows continue from N+1.
// Selecting nothing yields an empty batch, which is valid.
func translatePayers(d *Draft) []models.TargetPayer {
	var payers []models.TargetPayer

	base := 0
	if isYes(d.WantsMedicaid) {
		for i, state := range d.TargetStates {
			payers = append(payers, models.TargetPayer{
				PayerName: state + " Medicaid",
				PayerType: models.PayerTypeMedicaid,
				Priority:  i + 1,
			})
		}
		base = len(d.TargetStates)
	}

	for i, payer := range d.CommercialPayers {
		payers = append(payers, models.TargetPayer{
			PayerName: payer,
			PayerType: models.PayerTypeCommercial,
			Priority:  base + i + 1,
		})
	}

	return payers
}

func translateLicenses(licenses []StateLicense) models.JSONB {
	if len(licenses) == 0 {
		return nil
	}
	rows := make([]interface{}, 0, len(licenses))
	for _, l := range licenses {
		rows = append(rows, map[string]interface{}{
			"state":          l.State,
			"license_number": l.LicenseNumber,
		})
	}
	return models.JSONB{"licenses": rows}
}

func isYes(v string) bool {
	return v == "yes"
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func parseDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
