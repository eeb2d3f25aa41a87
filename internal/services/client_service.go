// internal/services/client_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/credara/credentialing-backend/internal/database"
	"github.com/credara/credentialing-backend/internal/models"
	"github.com/credara/credentialing-backend/internal/utils"
)

type ClientService struct {
	db           *gorm.DB
	notification *NotificationService
}

type UpdateClientStatusRequest struct {
	Status models.ClientStatus `json:"status" validate:"required"`
	Note   string              `json:"note,omitempty"`
}

// PortalStatus is the client-facing dashboard payload.
type PortalStatus struct {
	Client               *models.Client         `json:"client"`
	DocumentsUploaded    int                    `json:"documents_uploaded"`
	DocumentsApproved    int                    `json:"documents_approved"`
	RequiredDocuments    int                    `json:"required_documents"`
	CompletionPercentage int                    `json:"completion_percentage"`
	MissingDocuments     []string               `json:"missing_documents"`
	TargetPayers         []models.TargetPayer   `json:"target_payers"`
	RecentEvents         []models.TimelineEvent `json:"recent_events"`
}

// allowedTransitions is the credentialing pipeline. on_hold can resume to
// in_progress; completed is terminal.
var allowedTransitions = map[models.ClientStatus][]models.ClientStatus{
	models.ClientStatusIntakeIncomplete: {models.ClientStatusIntakeComplete},
	models.ClientStatusIntakeComplete:   {models.ClientStatusInProgress, models.ClientStatusOnHold},
	models.ClientStatusInProgress:       {models.ClientStatusCompleted, models.ClientStatusOnHold},
	models.ClientStatusOnHold:           {models.ClientStatusInProgress},
	models.ClientStatusPartial:          {models.ClientStatusIntakeComplete},
}

func NewClientService(db *gorm.DB, notification *NotificationService) *ClientService {
	return &ClientService{
		db:           db,
		notification: notification,
	}
}

func (s *ClientService) ListClients(params utils.PaginationParams) (*utils.PaginationResult, error) {
	var clients []models.Client
	var total int64

	query := s.db.Model(&models.Client{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("business_name ILIKE ? OR contact_name ILIKE ? OR email ILIKE ?", search, search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "business_name", "status"})
	query = utils.ApplyPagination(query, params)

	if err := query.Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	result := utils.CreatePaginationResult(clients, total, params)
	return &result, nil
}

// GetClientDetail loads the client with all satellite records for the admin
// detail page.
func (s *ClientService) GetClientDetail(clientID uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := s.db.
		Preload("Providers").
		Preload("TargetPayers", func(db *gorm.DB) *gorm.DB {
			return db.Order("priority ASC")
		}).
		Preload("Insurance").
		Preload("IntakeStatus").
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Documents").
		First(&client, clientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &client, nil
}

func (s *ClientService) GetClientByUserID(userID uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := s.db.Where("user_id = ?", userID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &client, nil
}

// UpdateClientStatus applies an admin status transition and appends the
// timeline event that records it.
func (s *ClientService) UpdateClientStatus(clientID, actorID uuid.UUID, req *UpdateClientStatusRequest) (*models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	oldStatus := client.Status
	if !transitionAllowed(oldStatus, req.Status) {
		return nil, fmt.Errorf("cannot transition from %s to %s", oldStatus, req.Status)
	}

	description := fmt.Sprintf("Status changed from %s to %s", oldStatus, req.Status)
	if req.Note != "" {
		description += ": " + req.Note
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		client.Status = req.Status
		if err := tx.Save(&client).Error; err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}

		event := &models.TimelineEvent{
			ClientID:    client.ID,
			EventType:   models.TimelineEventStatusChanged,
			Description: description,
			ActorID:     &actorID,
		}
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to create timeline event: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notify the client (async)
	go func() {
		var user models.User
		if err := s.db.First(&user, client.UserID).Error; err != nil {
			return
		}
		if err := s.notification.SendStatusChangeEmail(&user, &client, oldStatus); err != nil {
			logrus.WithError(err).Error("Failed to send status change email")
		}
	}()

	return &client, nil
}

// GetPortalStatus assembles the client dashboard: document completion against
// the required catalog, payer list, and recent timeline.
func (s *ClientService) GetPortalStatus(userID uuid.UUID) (*PortalStatus, error) {
	client, err := s.GetClientByUserID(userID)
	if err != nil {
		return nil, err
	}

	var requiredTypes []models.DocumentType
	if err := s.db.Where("required = ?", true).Order("sort_order ASC").Find(&requiredTypes).Error; err != nil {
		return nil, fmt.Errorf("failed to load document types: %w", err)
	}

	var documents []models.Document
	if err := s.db.Where("client_id = ?", client.ID).Find(&documents).Error; err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	uploaded := make(map[string]models.DocumentStatus, len(documents))
	approvedCount := 0
	for _, doc := range documents {
		uploaded[doc.DocumentType] = doc.Status
		if doc.Status == models.DocumentStatusApproved {
			approvedCount++
		}
	}

	var missing []string
	satisfied := 0
	for _, docType := range requiredTypes {
		if _, ok := uploaded[docType.Name]; ok {
			satisfied++
		} else {
			missing = append(missing, docType.Name)
		}
	}

	completion := 100
	if len(requiredTypes) > 0 {
		completion = satisfied * 100 / len(requiredTypes)
	}

	var payers []models.TargetPayer
	if err := s.db.Where("client_id = ?", client.ID).Order("priority ASC").Find(&payers).Error; err != nil {
		return nil, fmt.Errorf("failed to load target payers: %w", err)
	}

	var events []models.TimelineEvent
	if err := s.db.Where("client_id = ?", client.ID).Order("created_at DESC").Limit(10).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to load timeline events: %w", err)
	}

	return &PortalStatus{
		Client:               client,
		DocumentsUploaded:    len(documents),
		DocumentsApproved:    approvedCount,
		RequiredDocuments:    len(requiredTypes),
		CompletionPercentage: completion,
		MissingDocuments:     missing,
		TargetPayers:         payers,
		RecentEvents:         events,
	}, nil
}

func transitionAllowed(from, to models.ClientStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
