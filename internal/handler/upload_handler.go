package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pukaist/internal/service"
)

// UploadHandler handles the two-phase signed-URL upload flow.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// SignedURL handles POST /upload/signed-url
func (h *UploadHandler) SignedURL(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		Filename    string `json:"filename" binding:"required"`
		ContentType string `json:"content_type" binding:"required"`
		Theme       string `json:"theme"`
		SizeBytes   int64  `json:"size_bytes"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "filename and content_type are required")
		return
	}

	result, err := h.uploadService.SignedURL(c.Request.Context(), service.SignedURLInput{
		TenantID:    tenantID,
		UserID:      userID,
		Filename:    req.Filename,
		ContentType: req.ContentType,
		Theme:       req.Theme,
		SizeBytes:   req.SizeBytes,
		ExpiresIn:   req.ExpiresIn,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// Complete handles POST /upload/complete
func (h *UploadHandler) Complete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		UploadID string `json:"upload_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "upload_id is required")
		return
	}
	uploadID, err := uuid.Parse(req.UploadID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid upload ID")
		return
	}

	result, err := h.uploadService.Complete(c.Request.Context(), tenantID, uploadID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}
