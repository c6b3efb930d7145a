package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/langportal/internal/entities"
)

// ResetController serves the destructive reset endpoints.
type ResetController struct {
	store    ResetStore
	auditLog AuditLog
}

func NewResetController(store ResetStore, auditLog AuditLog) *ResetController {
	return &ResetController{store: store, auditLog: auditLog}
}

// ResetResponse reports what a reset removed.
type ResetResponse struct {
	Message string                `json:"message"`
	Deleted *entities.ResetResult `json:"deleted"`
}

func (rc *ResetController) run(c *gin.Context, action, message string, fn func(context.Context) (*entities.ResetResult, error)) {
	result, err := fn(c.Request.Context())
	if rc.auditLog != nil {
		rc.auditLog.LogReset(action, c.ClientIP(), result, err)
	}
	if err != nil {
		respondServiceError(c, err, action)
		return
	}
	c.JSON(http.StatusOK, ResetResponse{Message: message, Deleted: result})
}

// ResetHistory handles POST /api/reset_history
func (rc *ResetController) ResetHistory(c *gin.Context) {
	rc.run(c, "reset_history", "Study history has been reset", rc.store.ResetHistory)
}

// FullReset handles POST /api/full_reset
func (rc *ResetController) FullReset(c *gin.Context) {
	rc.run(c, "full_reset", "System has been fully reset", rc.store.FullReset)
}
