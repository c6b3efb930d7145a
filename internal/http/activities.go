package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/langportal/internal/database/activities"
)

// ActivitiesController serves /api/study_activities.
type ActivitiesController struct {
	store    ActivityStore
	sessions SessionStore
	auditLog AuditLog
	perPage  int
}

func NewActivitiesController(store ActivityStore, sessions SessionStore, auditLog AuditLog, perPage int) *ActivitiesController {
	return &ActivitiesController{store: store, sessions: sessions, auditLog: auditLog, perPage: perPage}
}

type activityRequest struct {
	Name         *string `json:"name"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Description  *string `json:"description"`
}

// List handles GET /api/study_activities
func (ac *ActivitiesController) List(c *gin.Context) {
	req, ok := parsePageRequest(c, ac.perPage)
	if !ok {
		return
	}

	items, total, err := ac.store.List(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "list study activities")
		return
	}
	respondPage(c, items, req, total)
}

// Get handles GET /api/study_activities/:id
func (ac *ActivitiesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	activity, err := ac.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get study activity")
		return
	}
	c.JSON(http.StatusOK, activity)
}

// Create handles POST /api/study_activities
func (ac *ActivitiesController) Create(c *gin.Context) {
	var body activityRequest
	if !bindJSON(c, &body) {
		return
	}
	in := activities.CreateInput{ThumbnailURL: body.ThumbnailURL, Description: body.Description}
	if body.Name != nil {
		in.Name = *body.Name
	}

	activity, err := ac.store.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, "create study activity")
		return
	}
	respondCreated(c, activity)
}

// Update handles PUT /api/study_activities/:id
func (ac *ActivitiesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body activityRequest
	if !bindJSON(c, &body) {
		return
	}

	activity, err := ac.store.Update(c.Request.Context(), id, activities.UpdateInput{
		Name:         body.Name,
		ThumbnailURL: body.ThumbnailURL,
		Description:  body.Description,
	})
	if err != nil {
		respondServiceError(c, err, "update study activity")
		return
	}
	c.JSON(http.StatusOK, activity)
}

// Delete handles DELETE /api/study_activities/:id
func (ac *ActivitiesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	activity, err := ac.store.GetByID(ctx, id)
	if err != nil {
		respondServiceError(c, err, "delete study activity")
		return
	}
	if err := ac.store.Delete(ctx, id); err != nil {
		respondServiceError(c, err, "delete study activity")
		return
	}

	if ac.auditLog != nil {
		ac.auditLog.LogDelete("study_activity", id, activity.Name, c.ClientIP())
	}
	c.Status(http.StatusNoContent)
}

// StudySessions handles GET /api/study_activities/:id/study_sessions
func (ac *ActivitiesController) StudySessions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req, ok := parsePageRequest(c, ac.perPage)
	if !ok {
		return
	}

	items, total, err := ac.sessions.ListForActivity(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "list activity sessions")
		return
	}
	respondPage(c, items, req, total)
}
