// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/credara/credentialing-backend/internal/services"
	"github.com/credara/credentialing-backend/internal/utils"
)

type AdminHandler struct {
	clientService     *services.ClientService
	invitationService *services.InvitationService
}

func NewAdminHandler(clientService *services.ClientService, invitationService *services.InvitationService) *AdminHandler {
	return &AdminHandler{
		clientService:     clientService,
		invitationService: invitationService,
	}
}

// GET /admin/clients
func (h *AdminHandler) ListClients(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.clientService.ListClients(params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GET /admin/clients/:id
func (h *AdminHandler) GetClient(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid client ID", nil)
		return
	}

	client, err := h.clientService.GetClientDetail(clientID)
	if err != nil {
		utils.NotFoundResponse(c, "Client")
		return
	}

	utils.SuccessResponse(c, gin.H{"client": client})
}

// PATCH /admin/clients/:id/status
func (h *AdminHandler) UpdateClientStatus(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid client ID", nil)
		return
	}

	var req services.UpdateClientStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	client, err := h.clientService.UpdateClientStatus(clientID, actorID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"client": client})
}

// POST /admin/invitations
func (h *AdminHandler) CreateInvitation(c *gin.Context) {
	invitedBy, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	invitation, err := h.invitationService.CreateInvitation(&req, invitedBy)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"invitation": invitation})
}

// GET /admin/invitations
func (h *AdminHandler) ListInvitations(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.invitationService.ListInvitations(params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, *result)
}

// DELETE /admin/invitations/:id
func (h *AdminHandler) RevokeInvitation(c *gin.Context) {
	invitationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid invitation ID", nil)
		return
	}

	if err := h.invitationService.RevokeInvitation(invitationID); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Invitation revoked"})
}

// GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.invitationService.ListUsers(params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, *result)
}

// DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	if err := h.invitationService.DeleteUser(userID, actorID); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "User deleted"})
}
