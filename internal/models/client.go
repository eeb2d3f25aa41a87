// internal/models/client.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Client is one credentialed business entity. Exactly one client row may
// exist per portal user (unique user_id).
type Client struct {
	BaseModel
	UserID                    uuid.UUID      `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	BusinessName              string         `json:"business_name" gorm:"size:255"`
	BusinessEntityType        string         `json:"business_entity_type" gorm:"size:50"`
	CredentialingType         string         `json:"credentialing_type" gorm:"size:20"`
	CurrentStates             pq.StringArray `json:"current_states" gorm:"type:text[]"`
	TargetStates              pq.StringArray `json:"target_states" gorm:"type:text[]"`
	PracticeAddressNewState   JSONB          `json:"practice_address_new_state" gorm:"type:jsonb"`
	Phone                     string         `json:"phone" gorm:"size:30"`
	Email                     string         `json:"email" gorm:"size:255"`
	Fax                       string         `json:"fax" gorm:"size:30"`
	TaxID                     string         `json:"tax_id" gorm:"size:20"`
	TaxIDType                 string         `json:"tax_id_type" gorm:"size:10"`
	HasNPI                    bool           `json:"has_npi"`
	NPIType                   string         `json:"npi_type" gorm:"size:20"`
	NPIIndividual             *string        `json:"npi_individual" gorm:"size:10"`
	NPIGroup                  *string        `json:"npi_group" gorm:"size:10"`
	HasBusinessEntityNewState bool           `json:"has_business_entity_new_state"`
	HasPhysicalLocation       string         `json:"has_physical_location" gorm:"size:10"`
	OfficeHours               string         `json:"office_hours" gorm:"size:100"`
	ServicesProvided          pq.StringArray `json:"services_provided" gorm:"type:text[]"`
	ContactName               string         `json:"contact_name" gorm:"size:255"`
	ContactPhone              string         `json:"contact_phone" gorm:"size:30"`
	ContactEmail              string         `json:"contact_email" gorm:"size:255"`
	PreferredContactMethod    string         `json:"preferred_contact_method" gorm:"size:20"`
	Status                    ClientStatus   `json:"status" gorm:"type:varchar(30);default:'intake_incomplete';index"`

	// Relationships. Satellite rows are owned by the client; deletion
	// cascades at the database layer.
	Providers    []Provider            `json:"providers,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	TargetPayers []TargetPayer         `json:"target_payers,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Insurance    *InsuranceInformation `json:"insurance,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	IntakeStatus *IntakeStatus         `json:"intake_status,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Timeline     []TimelineEvent       `json:"timeline,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Documents    []Document            `json:"documents,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

// Provider holds the identity, certification and license details for one
// practitioner owned by a client. Immutable after intake submission.
type Provider struct {
	BaseModel
	ClientID           uuid.UUID  `json:"client_id" gorm:"type:uuid;not null;index"`
	FullName           string     `json:"full_name" gorm:"size:255;not null"`
	DateOfBirth        *time.Time `json:"date_of_birth" gorm:"type:date"`
	SSN                string     `json:"-" gorm:"size:11"`
	Email              string     `json:"email" gorm:"size:255"`
	Phone              string     `json:"phone" gorm:"size:30"`
	BCBACertNumber     string     `json:"bcba_cert_number" gorm:"size:50"`
	BCBACertExpiration *time.Time `json:"bcba_cert_expiration" gorm:"type:date"`
	IndividualNPI      string     `json:"individual_npi" gorm:"size:10"`
	CAQHID             *string    `json:"caqh_id" gorm:"size:20"`
	HasCAQH            bool       `json:"has_caqh"`
	CAQHUpdated        bool       `json:"caqh_updated"`
	HasCurrentCV       bool       `json:"has_current_cv"`
	HasReferences      bool       `json:"has_references"`
	StateLicenses      JSONB      `json:"state_licenses" gorm:"type:jsonb"`
}

// TargetPayer is one payer the client wants to join, with the priority rank
// assigned at translation time (medicaid rows first, commercial rows after).
type TargetPayer struct {
	BaseModel
	ClientID  uuid.UUID   `json:"client_id" gorm:"type:uuid;not null;index"`
	PayerName string      `json:"payer_name" gorm:"size:255;not null"`
	PayerType PayerType   `json:"payer_type" gorm:"type:varchar(20);not null"`
	Priority  int         `json:"priority" gorm:"not null"`
	Status    PayerStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
}

type InsuranceInformation struct {
	BaseModel
	ClientID                 uuid.UUID  `json:"client_id" gorm:"type:uuid;uniqueIndex;not null"`
	HasProfessionalLiability bool       `json:"has_professional_liability"`
	ProfLiabilityCarrier     *string    `json:"prof_liability_carrier" gorm:"size:255"`
	ProfLiabilityExpiration  *time.Time `json:"prof_liability_expiration" gorm:"type:date"`
	HasGeneralLiability      bool       `json:"has_general_liability"`
	GenLiabilityCarrier      *string    `json:"gen_liability_carrier" gorm:"size:255"`
	GenLiabilityExpiration   *time.Time `json:"gen_liability_expiration" gorm:"type:date"`
}

// TableName keeps the singular table name instead of gorm's pluralization.
func (InsuranceInformation) TableName() string { return "insurance_information" }

// IntakeStatus captures the documentation-readiness flags answered during
// intake. Append-only.
type IntakeStatus struct {
	BaseModel
	ClientID         uuid.UUID      `json:"client_id" gorm:"type:uuid;uniqueIndex;not null"`
	HasBCBACertDocs  bool           `json:"has_bcba_cert_docs"`
	HasStateLicenses bool           `json:"has_state_licenses"`
	HasCurrentCV     bool           `json:"has_current_cv"`
	HasReferences    bool           `json:"has_references"`
	WantsMedicaid    bool           `json:"wants_medicaid"`
	CommercialPayers pq.StringArray `json:"commercial_payers" gorm:"type:text[]"`
	PayerPriority    string         `json:"payer_priority" gorm:"type:text"`
}

func (IntakeStatus) TableName() string { return "intake_status" }

type TimelineEvent struct {
	BaseModel
	ClientID    uuid.UUID         `json:"client_id" gorm:"type:uuid;not null;index"`
	EventType   TimelineEventType `json:"event_type" gorm:"type:varchar(50);not null;index"`
	Description string            `json:"description" gorm:"type:text"`
	ActorID     *uuid.UUID        `json:"actor_id" gorm:"type:uuid"`
	Metadata    JSONB             `json:"metadata" gorm:"type:jsonb"`
}
