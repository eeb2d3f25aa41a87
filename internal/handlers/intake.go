// internal/handlers/intake.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/credara/credentialing-backend/internal/services"
	"github.com/credara/credentialing-backend/internal/utils"
)

type IntakeHandler struct {
	intakeService *services.IntakeService
}

func NewIntakeHandler(intakeService *services.IntakeService) *IntakeHandler {
	return &IntakeHandler{
		intakeService: intakeService,
	}
}

// POST /portal/intake/session
func (h *IntakeHandler) StartSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	email, _ := c.Get("user_email")
	emailStr, _ := email.(string)

	state, err := h.intakeService.StartSession(userID, emailStr)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, state)
}

// GET /portal/intake/session
func (h *IntakeHandler) GetSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	state, err := h.intakeService.GetSession(userID)
	if err != nil {
		utils.NotFoundResponse(c, "Intake session")
		return
	}

	utils.SuccessResponse(c, state)
}

// PATCH /portal/intake/field
func (h *IntakeHandler) SetField(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	state, err := h.intakeService.SetField(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, state)
}

// POST /portal/intake/toggle
func (h *IntakeHandler) ToggleField(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.ToggleFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	state, err := h.intakeService.ToggleField(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, state)
}

// POST /portal/intake/licenses
func (h *IntakeHandler) AddLicense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.AddLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	state, err := h.intakeService.AddLicense(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, state)
}

// POST /portal/intake/next
func (h *IntakeHandler) NextStep(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	state, err := h.intakeService.NextStep(userID)
	if err != nil {
		utils.NotFoundResponse(c, "Intake session")
		return
	}

	utils.SuccessResponse(c, state)
}

// POST /portal/intake/prev
func (h *IntakeHandler) PrevStep(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	state, err := h.intakeService.PrevStep(userID)
	if err != nil {
		utils.NotFoundResponse(c, "Intake session")
		return
	}

	utils.SuccessResponse(c, state)
}

// GET /portal/intake/fields?step=N
func (h *IntakeHandler) GetFields(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	step, err := strconv.Atoi(c.Query("step"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid step", nil)
		return
	}

	fields, err := h.intakeService.Fields(userID, step)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"step": step, "fields": fields})
}

// POST /portal/intake/submit
func (h *IntakeHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	client, err := h.intakeService.Submit(c.Request.Context(), userID)
	if err != nil {
		if err == services.ErrAlreadySubmitted {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"client": client})
}
