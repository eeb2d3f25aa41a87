// internal/models/invitation.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Invitation is an admin-issued, token-redeemable offer to create an account.
type Invitation struct {
	BaseModel
	Email        string           `json:"email" gorm:"size:255;not null;index"`
	Token        string           `json:"-" gorm:"size:64;uniqueIndex;not null"`
	Role         UserRole         `json:"role" gorm:"type:varchar(20);not null;default:'client'"`
	FirstName    string           `json:"first_name" gorm:"size:100"`
	LastName     string           `json:"last_name" gorm:"size:100"`
	BusinessName string           `json:"business_name" gorm:"size:255"`
	InvitedBy    uuid.UUID        `json:"invited_by" gorm:"type:uuid;not null"`
	Status       InvitationStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ExpiresAt    time.Time        `json:"expires_at"`
	AcceptedAt   *time.Time       `json:"accepted_at"`

	// Relationships
	Inviter User `json:"inviter,omitempty" gorm:"foreignKey:InvitedBy"`
}

func (i *Invitation) Expired() bool {
	return time.Now().After(i.ExpiresAt)
}
