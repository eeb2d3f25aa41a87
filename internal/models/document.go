// internal/models/document.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType is a seeded catalog entry describing one document category a
// client may be asked to provide.
type DocumentType struct {
	BaseModel
	Category    string `json:"category" gorm:"size:50;not null;index"`
	Name        string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
	Required    bool   `json:"required" gorm:"default:false"`
	SortOrder   int    `json:"sort_order" gorm:"default:0"`
}

type Document struct {
	BaseModel
	ClientID     uuid.UUID      `json:"client_id" gorm:"type:uuid;not null;index"`
	DocumentType string         `json:"document_type" gorm:"size:100;not null;index"`
	FileName     string         `json:"file_name" gorm:"size:255;not null"`
	FilePath     string         `json:"file_path" gorm:"size:500;not null"`
	FileSize     int64          `json:"file_size"`
	MimeType     string         `json:"mime_type" gorm:"size:100"`
	Status       DocumentStatus `json:"status" gorm:"type:varchar(20);default:'pending_review';index"`
	ReviewNotes  string         `json:"review_notes,omitempty" gorm:"type:text"`
	ReviewedBy   *uuid.UUID     `json:"reviewed_by" gorm:"type:uuid"`
	ReviewedAt   *time.Time     `json:"reviewed_at"`
	UploadedAt   time.Time      `json:"uploaded_at" gorm:"autoCreateTime"`
}
