package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pukaist/internal/service"
)

// WizardHandler handles the case-creation wizard field store.
type WizardHandler struct {
	wizardService service.WizardService
}

// NewWizardHandler creates a new WizardHandler.
func NewWizardHandler(wizardService service.WizardService) *WizardHandler {
	return &WizardHandler{wizardService: wizardService}
}

// Get handles GET /wizard/fields
func (h *WizardHandler) Get(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	RespondOK(c, h.wizardService.Get(c.Request.Context(), userID))
}

// Update handles PATCH /wizard/fields
func (h *WizardHandler) Update(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var patch service.WizardFieldsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid wizard patch")
		return
	}
	RespondOK(c, h.wizardService.Update(c.Request.Context(), userID, patch))
}

// Save handles POST /wizard/save
func (h *WizardHandler) Save(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	RespondOK(c, h.wizardService.Save(c.Request.Context(), userID))
}

// Reset handles POST /wizard/reset
func (h *WizardHandler) Reset(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	RespondOK(c, h.wizardService.Reset(c.Request.Context(), userID))
}
