package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pukaist/internal/domain"
	"pukaist/internal/service"
)

// PreferenceHandler handles UI density, pipeline configuration, and feature
// spotlight endpoints.
type PreferenceHandler struct {
	densityService   service.DensityService
	pipelineService  service.PipelineService
	spotlightService service.SpotlightService
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(
	densityService service.DensityService,
	pipelineService service.PipelineService,
	spotlightService service.SpotlightService,
) *PreferenceHandler {
	return &PreferenceHandler{
		densityService:   densityService,
		pipelineService:  pipelineService,
		spotlightService: spotlightService,
	}
}

// GetDensity handles GET /preferences/density
func (h *PreferenceHandler) GetDensity(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	mode := h.densityService.Get(c.Request.Context(), userID)
	RespondOK(c, gin.H{"density": mode})
}

// SetDensity handles PUT /preferences/density
func (h *PreferenceHandler) SetDensity(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		Density string `json:"density" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "density is required")
		return
	}

	mode := domain.DensityMode(req.Density)
	if err := h.densityService.Set(c.Request.Context(), userID, mode); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"density": mode})
}

// ToggleDensity handles POST /preferences/density/toggle
func (h *PreferenceHandler) ToggleDensity(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	mode := h.densityService.Toggle(c.Request.Context(), userID)
	RespondOK(c, gin.H{"density": mode})
}

// GetPipelineConfig handles GET /preferences/pipeline
func (h *PreferenceHandler) GetPipelineConfig(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	RespondOK(c, h.pipelineService.Get(c.Request.Context(), userID))
}

// UpdatePipelineConfig handles PATCH /preferences/pipeline
func (h *PreferenceHandler) UpdatePipelineConfig(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var patch service.PipelineConfigPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid pipeline patch")
		return
	}

	RespondOK(c, h.pipelineService.Update(c.Request.Context(), userID, patch))
}

// ResetPipelineConfig handles POST /preferences/pipeline/reset
func (h *PreferenceHandler) ResetPipelineConfig(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	RespondOK(c, h.pipelineService.Reset(c.Request.Context(), userID))
}

// GetPipelineIntent handles GET /preferences/pipeline/intent
func (h *PreferenceHandler) GetPipelineIntent(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	intent := h.pipelineService.Intent(c.Request.Context(), userID)
	RespondOK(c, gin.H{"intent": intent, "stages": intent.Stages()})
}

// GetSpotlights handles GET /preferences/spotlights
func (h *PreferenceHandler) GetSpotlights(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	RespondOK(c, gin.H{"seen": h.spotlightService.Seen(c.Request.Context(), userID)})
}

// MarkSpotlightSeen handles POST /preferences/spotlights/:feature
func (h *PreferenceHandler) MarkSpotlightSeen(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	seen := h.spotlightService.MarkSeen(c.Request.Context(), userID, c.Param("feature"))
	RespondOK(c, gin.H{"seen": seen})
}

// ResetSpotlights handles POST /preferences/spotlights/reset
func (h *PreferenceHandler) ResetSpotlights(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	h.spotlightService.Reset(c.Request.Context(), userID)
	RespondOK(c, gin.H{"seen": []string{}})
}
