package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/peakspace-dev/peakspace/internal/wizard"
)

// CreateDraft handles POST /api/questionnaire-draft: starts a fresh wizard
// session and returns its id for subsequent saves.
func CreateDraft(ctx *gin.Context) {
	sessionID := uuid.NewString()
	state := wizard.NewState()

	if err := drafts.Save(ctx.Request.Context(), sessionID, state); err != nil {
		log.Printf("Failed to create draft: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create draft"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"draft":     state,
		"steps":     wizard.Steps,
	})
}

// GetDraft handles GET /api/questionnaire-draft/:session_id: resumes a
// half-finished wizard. Stale-schema drafts are reported as absent.
func GetDraft(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")

	state, err := drafts.Load(ctx.Request.Context(), sessionID)

	if err != nil {
		if errors.Is(err, wizard.ErrNoDraft) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "No draft found"})
			return
		}
		log.Printf("Failed to load draft %s: %v", sessionID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load draft"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"draft":      state,
		"steps":      wizard.Steps,
		"canProceed": state.CanProceed(),
		"complete":   state.Complete(),
	})
}

// SaveDraft handles PUT /api/questionnaire-draft/:session_id: persists the
// wizard state on every field change. The server stamps the schema version.
func SaveDraft(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")

	var state wizard.State
	if err := ctx.ShouldBindJSON(&state); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draft payload"})
		return
	}

	state.Version = wizard.SchemaVersion
	if state.CurrentStep < 0 || state.CurrentStep >= len(wizard.Steps) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step index"})
		return
	}

	if err := drafts.Save(ctx.Request.Context(), sessionID, &state); err != nil {
		log.Printf("Failed to save draft %s: %v", sessionID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":    true,
		"canProceed": state.CanProceed(),
		"complete":   state.Complete(),
		"step":       state.Step(),
	})
}

// DeleteDraft handles DELETE /api/questionnaire-draft/:session_id, called
// after a successful final submission.
func DeleteDraft(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")

	if err := drafts.Delete(ctx.Request.Context(), sessionID); err != nil {
		log.Printf("Failed to delete draft %s: %v", sessionID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete draft"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
