// internal/services/document_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/credara/credentialing-backend/internal/models"
)

type DocumentService struct {
	db           *gorm.DB
	storage      *StorageService
	notification *NotificationService
}

type ReviewDocumentRequest struct {
	Status      models.DocumentStatus `json:"status" validate:"required"`
	ReviewNotes string                `json:"review_notes,omitempty"`
}

func NewDocumentService(db *gorm.DB, storage *StorageService, notification *NotificationService) *DocumentService {
	return &DocumentService{
		db:           db,
		storage:      storage,
		notification: notification,
	}
}

func (s *DocumentService) ListDocumentTypes() ([]models.DocumentType, error) {
	var types []models.DocumentType
	if err := s.db.Order("sort_order ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list document types: %w", err)
	}
	return types, nil
}

// UploadDocument stores the file and records the document row. A re-upload of
// the same document type replaces the previous file and resets review state.
func (s *DocumentService) UploadDocument(clientID uuid.UUID, documentType string, file multipart.File, header *multipart.FileHeader) (*models.Document, error) {
	// The type must exist in the catalog
	var docType models.DocumentType
	if err := s.db.Where("name = ?", documentType).First(&docType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("unknown document type")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	result, err := s.storage.UploadDocument(file, header, clientID, documentType)
	if err != nil {
		return nil, err
	}

	// Replace an existing upload of the same type
	var existing models.Document
	err = s.db.Where("client_id = ? AND document_type = ?", clientID, documentType).First(&existing).Error
	if err == nil {
		oldPath := existing.FilePath

		existing.FileName = header.Filename
		existing.FilePath = result.Key
		existing.FileSize = result.Size
		existing.MimeType = result.MimeType
		existing.Status = models.DocumentStatusPendingReview
		existing.ReviewNotes = ""
		existing.ReviewedBy = nil
		existing.ReviewedAt = nil
		existing.UploadedAt = time.Now()

		if err := s.db.Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to update document: %w", err)
		}

		if delErr := s.storage.DeleteFile(oldPath); delErr != nil {
			logrus.WithError(delErr).WithField("path", oldPath).Warn("Failed to delete replaced document file")
		}

		s.appendTimeline(clientID, models.TimelineEventDocumentUploaded, fmt.Sprintf("Document re-uploaded: %s", documentType), nil)
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	document := &models.Document{
		ClientID:     clientID,
		DocumentType: documentType,
		FileName:     header.Filename,
		FilePath:     result.Key,
		FileSize:     result.Size,
		MimeType:     result.MimeType,
		Status:       models.DocumentStatusPendingReview,
	}

	if err := s.db.Create(document).Error; err != nil {
		// Roll the file back so no orphan object remains
		if delErr := s.storage.DeleteFile(result.Key); delErr != nil {
			logrus.WithError(delErr).WithField("path", result.Key).Warn("Failed to delete orphaned document file")
		}
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	s.appendTimeline(clientID, models.TimelineEventDocumentUploaded, fmt.Sprintf("Document uploaded: %s", documentType), nil)

	return document, nil
}

func (s *DocumentService) ListDocuments(clientID uuid.UUID) ([]models.Document, error) {
	var documents []models.Document
	if err := s.db.Where("client_id = ?", clientID).Order("uploaded_at DESC").Find(&documents).Error; err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return documents, nil
}

// DeleteDocument removes the stored file first, then the row.
func (s *DocumentService) DeleteDocument(clientID, documentID uuid.UUID) error {
	var document models.Document
	if err := s.db.Where("id = ? AND client_id = ?", documentID, clientID).First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("document not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.storage.DeleteFile(document.FilePath); err != nil {
		return fmt.Errorf("failed to delete document file: %w", err)
	}

	if err := s.db.Delete(&document).Error; err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

// GetDownloadURL signs a one-hour GET for a client-owned document.
func (s *DocumentService) GetDownloadURL(clientID, documentID uuid.UUID) (string, error) {
	var document models.Document
	if err := s.db.Where("id = ? AND client_id = ?", documentID, clientID).First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.New("document not found")
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	return s.storage.GeneratePresignedURL(document.FilePath, time.Hour)
}

// ReviewDocument is the admin verdict. It stamps the reviewer, appends a
// timeline event, and notifies the client.
func (s *DocumentService) ReviewDocument(documentID, reviewerID uuid.UUID, req *ReviewDocumentRequest) (*models.Document, error) {
	if req.Status != models.DocumentStatusApproved && req.Status != models.DocumentStatusRejected {
		return nil, errors.New("review status must be approved or rejected")
	}

	var document models.Document
	if err := s.db.First(&document, documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("document not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	now := time.Now()
	document.Status = req.Status
	document.ReviewNotes = req.ReviewNotes
	document.ReviewedBy = &reviewerID
	document.ReviewedAt = &now

	if err := s.db.Save(&document).Error; err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	s.appendTimeline(document.ClientID, models.TimelineEventDocumentReviewed,
		fmt.Sprintf("Document %s: %s", req.Status, document.DocumentType), &reviewerID)

	// Notify the client (async)
	go func() {
		var client models.Client
		if err := s.db.First(&client, document.ClientID).Error; err != nil {
			return
		}
		var user models.User
		if err := s.db.First(&user, client.UserID).Error; err != nil {
			return
		}
		if err := s.notification.SendDocumentReviewedEmail(&user, &document); err != nil {
			logrus.WithError(err).Error("Failed to send document review email")
		}
	}()

	return &document, nil
}

func (s *DocumentService) appendTimeline(clientID uuid.UUID, eventType models.TimelineEventType, description string, actorID *uuid.UUID) {
	event := &models.TimelineEvent{
		ClientID:    clientID,
		EventType:   eventType,
		Description: description,
		ActorID:     actorID,
	}
	if err := s.db.Create(event).Error; err != nil {
		logrus.WithError(err).Error("Failed to append timeline event")
	}
}
