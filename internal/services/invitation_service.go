// internal/services/invitation_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/credara/credentialing-backend/internal/config"
	"github.com/credara/credentialing-backend/internal/models"
	"github.com/credara/credentialing-backend/internal/utils"
)

type InvitationService struct {
	db           *gorm.DB
	cfg          *config.Config
	notification *NotificationService
}

type CreateInvitationRequest struct {
	Email        string          `json:"email" validate:"required,email"`
	Role         models.UserRole `json:"role" validate:"required"`
	FirstName    string          `json:"first_name" validate:"required"`
	LastName     string          `json:"last_name" validate:"required"`
	BusinessName string          `json:"business_name,omitempty"`
}

func NewInvitationService(db *gorm.DB, cfg *config.Config, notification *NotificationService) *InvitationService {
	return &InvitationService{
		db:           db,
		cfg:          cfg,
		notification: notification,
	}
}

func (s *InvitationService) CreateInvitation(req *CreateInvitationRequest, invitedBy uuid.UUID) (*models.Invitation, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Role != models.UserRoleAdmin && req.Role != models.UserRoleClient {
		return nil, errors.New("invalid role")
	}

	// Reject when the address already belongs to a user
	var existingUser models.User
	if err := s.db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		return nil, errors.New("user with this email already exists")
	}

	// Supersede any pending invitation for the same address
	s.db.Model(&models.Invitation{}).
		Where("email = ? AND status = ?", req.Email, models.InvitationStatusPending).
		Update("status", models.InvitationStatusRevoked)

	token, err := utils.GenerateInvitationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation token: %w", err)
	}

	invitation := &models.Invitation{
		Email:        req.Email,
		Token:        token,
		Role:         req.Role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BusinessName: req.BusinessName,
		InvitedBy:    invitedBy,
		Status:       models.InvitationStatusPending,
		ExpiresAt:    time.Now().Add(time.Duration(s.cfg.Intake.InvitationTTLHours) * time.Hour),
	}

	if err := s.db.Create(invitation).Error; err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	// Send invitation email (async)
	go func() {
		if err := s.notification.SendInvitationEmail(invitation, token); err != nil {
			logrus.WithError(err).WithField("email", invitation.Email).Error("Failed to send invitation email")
		}
	}()

	return invitation, nil
}

func (s *InvitationService) ListInvitations(params utils.PaginationParams) (*utils.PaginationResult, error) {
	var invitations []models.Invitation
	var total int64

	query := s.db.Model(&models.Invitation{}).Preload("Inviter")

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("email ILIKE ? OR business_name ILIKE ?", search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count invitations: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "email", "expires_at"})
	query = utils.ApplyPagination(query, params)

	if err := query.Find(&invitations).Error; err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	result := utils.CreatePaginationResult(invitations, total, params)
	return &result, nil
}

func (s *InvitationService) RevokeInvitation(invitationID uuid.UUID) error {
	var invitation models.Invitation
	if err := s.db.First(&invitation, invitationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("invitation not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if invitation.Status != models.InvitationStatusPending {
		return errors.New("only pending invitations can be revoked")
	}

	return s.db.Model(&invitation).Update("status", models.InvitationStatusRevoked).Error
}

// GetInvitationByToken resolves a pending invitation for the accept page.
func (s *InvitationService) GetInvitationByToken(token string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := s.db.Where("token = ? AND status = ?", token, models.InvitationStatusPending).First(&invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid or expired invitation")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if invitation.Expired() {
		s.db.Model(&invitation).Update("status", models.InvitationStatusExpired)
		return nil, errors.New("invalid or expired invitation")
	}

	return &invitation, nil
}

func (s *InvitationService) ListUsers(params utils.PaginationParams) (*utils.PaginationResult, error) {
	var users []models.User
	var total int64

	query := s.db.Model(&models.User{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?", search, search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "email", "last_login_at"})
	query = utils.ApplyPagination(query, params)

	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := utils.CreatePaginationResult(users, total, params)
	return &result, nil
}

func (s *InvitationService) DeleteUser(userID, actorID uuid.UUID) error {
	if userID == actorID {
		return errors.New("cannot delete your own account")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("user not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&user).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
