// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleClient UserRole = "client"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type ClientStatus string

const (
	ClientStatusIntakeIncomplete ClientStatus = "intake_incomplete"
	ClientStatusIntakeComplete   ClientStatus = "intake_complete"
	ClientStatusInProgress       ClientStatus = "in_progress"
	ClientStatusCompleted        ClientStatus = "completed"
	ClientStatusOnHold           ClientStatus = "on_hold"
	// Assigned when a failed submission could not be fully compensated and
	// the surviving client row needs manual reconciliation.
	ClientStatusPartial ClientStatus = "partial"
)

type PayerType string

const (
	PayerTypeMedicaid   PayerType = "medicaid"
	PayerTypeCommercial PayerType = "commercial"
)

type PayerStatus string

const (
	PayerStatusPending   PayerStatus = "pending"
	PayerStatusSubmitted PayerStatus = "submitted"
	PayerStatusInNetwork PayerStatus = "in_network"
	PayerStatusDeclined  PayerStatus = "declined"
)

type DocumentStatus string

const (
	DocumentStatusPendingReview DocumentStatus = "pending_review"
	DocumentStatusApproved      DocumentStatus = "approved"
	DocumentStatusRejected      DocumentStatus = "rejected"
)

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRevoked  InvitationStatus = "revoked"
	InvitationStatusExpired  InvitationStatus = "expired"
)

type TimelineEventType string

const (
	TimelineEventIntakeComplete   TimelineEventType = "intake_complete"
	TimelineEventStatusChanged    TimelineEventType = "status_changed"
	TimelineEventDocumentUploaded TimelineEventType = "document_uploaded"
	TimelineEventDocumentReviewed TimelineEventType = "document_reviewed"
)
