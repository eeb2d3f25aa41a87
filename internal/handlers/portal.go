// internal/handlers/portal.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/credara/credentialing-backend/internal/services"
	"github.com/credara/credentialing-backend/internal/utils"
)

type PortalHandler struct {
	clientService *services.ClientService
}

func NewPortalHandler(clientService *services.ClientService) *PortalHandler {
	return &PortalHandler{
		clientService: clientService,
	}
}

// GET /portal/status
func (h *PortalHandler) GetStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	status, err := h.clientService.GetPortalStatus(userID)
	if err != nil {
		utils.NotFoundResponse(c, "Client")
		return
	}

	utils.SuccessResponse(c, status)
}
