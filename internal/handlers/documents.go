// internal/handlers/documents.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/credara/credentialing-backend/internal/models"
	"github.com/credara/credentialing-backend/internal/services"
	"github.com/credara/credentialing-backend/internal/utils"
)

type DocumentHandler struct {
	documentService *services.DocumentService
	clientService   *services.ClientService
}

func NewDocumentHandler(documentService *services.DocumentService, clientService *services.ClientService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		clientService:   clientService,
	}
}

// GET /portal/documents/types
func (h *DocumentHandler) ListDocumentTypes(c *gin.Context) {
	types, err := h.documentService.ListDocumentTypes()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"document_types": types})
}

// POST /portal/documents (multipart: document_type, file)
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	client, ok := h.resolveClient(c)
	if !ok {
		return
	}

	documentType := c.PostForm("document_type")
	if documentType == "" {
		utils.BadRequestResponse(c, "document_type is required", nil)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "file is required", err.Error())
		return
	}
	defer file.Close()

	document, err := h.documentService.UploadDocument(client.ID, documentType, file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"document": document})
}

// GET /portal/documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	client, ok := h.resolveClient(c)
	if !ok {
		return
	}

	documents, err := h.documentService.ListDocuments(client.ID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"documents": documents})
}

// DELETE /portal/documents/:id
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	client, ok := h.resolveClient(c)
	if !ok {
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid document ID", nil)
		return
	}

	if err := h.documentService.DeleteDocument(client.ID, documentID); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Document deleted"})
}

// GET /portal/documents/:id/download
func (h *DocumentHandler) GetDownloadURL(c *gin.Context) {
	client, ok := h.resolveClient(c)
	if !ok {
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid document ID", nil)
		return
	}

	url, err := h.documentService.GetDownloadURL(client.ID, documentID)
	if err != nil {
		utils.NotFoundResponse(c, "Document")
		return
	}

	utils.SuccessResponse(c, gin.H{"url": url})
}

// POST /admin/documents/:id/review
func (h *DocumentHandler) ReviewDocument(c *gin.Context) {
	reviewerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid document ID", nil)
		return
	}

	var req services.ReviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	document, err := h.documentService.ReviewDocument(documentID, reviewerID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"document": document})
}

// resolveClient maps the authenticated portal user to their client row and
// writes the error response when there isn't one yet.
func (h *DocumentHandler) resolveClient(c *gin.Context) (*models.Client, bool) {
	userID, authed := currentUserID(c)
	if !authed {
		utils.UnauthorizedResponse(c, "")
		return nil, false
	}

	client, err := h.clientService.GetClientByUserID(userID)
	if err != nil {
		utils.NotFoundResponse(c, "Client")
		return nil, false
	}

	return client, true
}
