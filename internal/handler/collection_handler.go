package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pukaist/internal/domain"
	"pukaist/internal/service"
)

// CollectionHandler handles collection management and export endpoints.
type CollectionHandler struct {
	collectionService service.CollectionService
	exportService     service.ExportService
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(collectionService service.CollectionService, exportService service.ExportService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService, exportService: exportService}
}

// Create handles POST /collections
func (h *CollectionHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		DocIDs      []string `json:"doc_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		HandleError(c, domain.ErrCollectionNameEmpty)
		return
	}

	collection, err := h.collectionService.Create(c.Request.Context(), service.CollectionCreateInput{
		TenantID:    tenantID,
		CreatedBy:   userID,
		Name:        req.Name,
		Description: req.Description,
		DocIDs:      req.DocIDs,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, collection)
}

// List handles GET /collections
func (h *CollectionHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	collections, err := h.collectionService.List(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, collections)
}

// GetByName handles GET /collections/:name
func (h *CollectionHandler) GetByName(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	collection, err := h.collectionService.GetByName(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, collection)
}

// Summary handles GET /collections/:name/summary
func (h *CollectionHandler) Summary(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	summary, err := h.collectionService.Summary(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}

// AddDoc handles POST /collections/:name/docs
func (h *CollectionHandler) AddDoc(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		DocID string `json:"doc_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "doc_id is required")
		return
	}

	collection, err := h.collectionService.AddDoc(c.Request.Context(), tenantID, c.Param("name"), req.DocID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, collection)
}

// RemoveDoc handles DELETE /collections/:name/docs/:docId
func (h *CollectionHandler) RemoveDoc(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	collection, err := h.collectionService.RemoveDoc(c.Request.Context(), tenantID, c.Param("name"), c.Param("docId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, collection)
}

// Delete handles DELETE /collections/:name
//
// Deletion is deferred behind an undo window; the response carries the
// pending action so the client can offer the undo affordance.
func (h *CollectionHandler) Delete(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	action, err := h.collectionService.Delete(c.Request.Context(), tenantID, c.Param("name"), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"action": action})
}

// Export handles POST /collections/:name/export
func (h *CollectionHandler) Export(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		Format         string `json:"format" binding:"required"`
		IncludeSummary bool   `json:"include_summary"`
		Delivery       string `json:"delivery"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "format is required")
		return
	}

	result, err := h.exportService.Export(c.Request.Context(), tenantID, c.Param("name"), domain.ExportOptions{
		Format:         domain.ExportFormat(req.Format),
		IncludeSummary: req.IncludeSummary,
		Delivery:       domain.ExportDelivery(req.Delivery),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if result.URL != "" {
		RespondOK(c, gin.H{"url": result.URL, "filename": result.Filename})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
