package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pukaist/internal/service"
)

// UndoHandler exposes the pending-action coordinator.
type UndoHandler struct {
	undoService service.UndoService
}

// NewUndoHandler creates a new UndoHandler.
func NewUndoHandler(undoService service.UndoService) *UndoHandler {
	return &UndoHandler{undoService: undoService}
}

// Current handles GET /undo/current
func (h *UndoHandler) Current(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	action, remaining, pending := h.undoService.Current(userID)
	if !pending {
		RespondOK(c, gin.H{"pending": false})
		return
	}
	RespondOK(c, gin.H{
		"pending":      true,
		"action":       action,
		"remaining_ms": remaining.Milliseconds(),
	})
}

// Undo handles POST /undo/:id/undo
func (h *UndoHandler) Undo(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	actionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid action ID")
		return
	}
	if err := h.undoService.Undo(userID, actionID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"undone": true})
}

// Dismiss handles POST /undo/:id/dismiss
func (h *UndoHandler) Dismiss(c *gin.Context) {
	_, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	actionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid action ID")
		return
	}
	if err := h.undoService.Dismiss(userID, actionID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"dismissed": true})
}
