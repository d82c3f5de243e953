package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pukaist/internal/service"
)

// ProgressHandler handles curriculum progress and day-streak endpoints.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// Get handles GET /progress
func (h *ProgressHandler) Get(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	RespondOK(c, h.progressService.Get(c.Request.Context(), userID))
}

// RecordVisit handles POST /progress/visit
func (h *ProgressHandler) RecordVisit(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	RespondOK(c, gin.H{"streak": h.progressService.RecordVisit(c.Request.Context(), userID)})
}

// MarkLessonViewed handles POST /progress/lessons/viewed
func (h *ProgressHandler) MarkLessonViewed(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		Pathway string `json:"pathway" binding:"required"`
		Module  string `json:"module" binding:"required"`
		Unit    string `json:"unit" binding:"required"`
		Lesson  string `json:"lesson" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "pathway, module, unit, and lesson are required")
		return
	}

	state := h.progressService.MarkLessonViewed(c.Request.Context(), userID, req.Pathway, req.Module, req.Unit, req.Lesson)
	RespondOK(c, state)
}

// MarkUnitCompleted handles POST /progress/units/completed
func (h *ProgressHandler) MarkUnitCompleted(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		Pathway string `json:"pathway" binding:"required"`
		Module  string `json:"module" binding:"required"`
		Unit    string `json:"unit" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "pathway, module, and unit are required")
		return
	}

	state := h.progressService.MarkUnitCompleted(c.Request.Context(), userID, req.Pathway, req.Module, req.Unit)
	RespondOK(c, state)
}

// PathwayPercent handles GET /progress/pathways/:pathway/percent
func (h *ProgressHandler) PathwayPercent(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	total, err := strconv.Atoi(c.Query("total_units"))
	if err != nil || total <= 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "total_units must be a positive integer")
		return
	}

	percent := h.progressService.PathwayProgress(c.Request.Context(), userID, c.Param("pathway"), total)
	RespondOK(c, gin.H{"pathway": c.Param("pathway"), "percent": percent})
}

// ModulePercent handles GET /progress/pathways/:pathway/modules/:module/percent
func (h *ProgressHandler) ModulePercent(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	total, err := strconv.Atoi(c.Query("total_units"))
	if err != nil || total <= 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "total_units must be a positive integer")
		return
	}

	percent := h.progressService.ModuleProgress(c.Request.Context(), userID, c.Param("pathway"), c.Param("module"), total)
	RespondOK(c, gin.H{
		"pathway": c.Param("pathway"),
		"module":  c.Param("module"),
		"percent": percent,
	})
}

// Reset handles POST /progress/reset
func (h *ProgressHandler) Reset(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	RespondOK(c, h.progressService.Reset(c.Request.Context(), userID))
}
