package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/langportal/internal/entities"
	"github.com/mrlokans/langportal/internal/pagination"
)

type AuditController struct {
	auditLog AuditLog
}

func NewAuditController(auditLog AuditLog) *AuditController {
	return &AuditController{auditLog: auditLog}
}

// GetAuditEvents returns paginated audit events, newest first.
// GET /api/audit/events?type=reset&page=1&per_page=25
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	req, ok := parsePageRequest(c, 25)
	if !ok {
		return
	}
	// limit is accepted as an alias for per_page.
	if c.Query("per_page") == "" && c.Query("limit") != "" {
		limit, ok := queryInt(c, "limit", 25)
		if !ok {
			return
		}
		req = pagination.NewRequest(req.Page, limit)
	}

	eventType := entities.AuditEventType(c.Query("type"))
	events, total, err := ac.auditLog.GetEvents(c.Request.Context(), eventType, req)
	if err != nil {
		respondServiceError(c, err, "list audit events")
		return
	}
	respondPage(c, events, req, total)
}
