package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/langportal/internal/database/groups"
	"github.com/mrlokans/langportal/internal/database/words"
)

// GroupsController serves /api/groups and the group-scoped word and
// session listings.
type GroupsController struct {
	groups   GroupStore
	words    WordStore
	sessions SessionStore
	auditLog AuditLog
	perPage  int
}

func NewGroupsController(groupStore GroupStore, wordStore WordStore, sessionStore SessionStore, auditLog AuditLog, perPage int) *GroupsController {
	return &GroupsController{
		groups:   groupStore,
		words:    wordStore,
		sessions: sessionStore,
		auditLog: auditLog,
		perPage:  perPage,
	}
}

type groupRequest struct {
	Name *string `json:"name"`
}

type addWordRequest struct {
	WordID uint `json:"word_id"`
}

// List handles GET /api/groups
func (gc *GroupsController) List(c *gin.Context) {
	req, ok := parsePageRequest(c, gc.perPage)
	if !ok {
		return
	}
	sort, err := groups.ParseSort(c.Query("sort_by"), c.Query("order"))
	if err != nil {
		respondServiceError(c, err, "list groups")
		return
	}

	items, total, err := gc.groups.List(c.Request.Context(), req, sort)
	if err != nil {
		respondServiceError(c, err, "list groups")
		return
	}
	respondPage(c, items, req, total)
}

// Get handles GET /api/groups/:id
func (gc *GroupsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	group, err := gc.groups.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get group")
		return
	}
	c.JSON(http.StatusOK, group)
}

// Create handles POST /api/groups
func (gc *GroupsController) Create(c *gin.Context) {
	var body groupRequest
	if !bindJSON(c, &body) {
		return
	}
	name := ""
	if body.Name != nil {
		name = *body.Name
	}

	group, err := gc.groups.Create(c.Request.Context(), name)
	if err != nil {
		respondServiceError(c, err, "create group")
		return
	}
	respondCreated(c, group)
}

// Update handles PUT /api/groups/:id
func (gc *GroupsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body groupRequest
	if !bindJSON(c, &body) {
		return
	}

	group, err := gc.groups.Update(c.Request.Context(), id, body.Name)
	if err != nil {
		respondServiceError(c, err, "update group")
		return
	}
	c.JSON(http.StatusOK, group)
}

// Delete handles DELETE /api/groups/:id
func (gc *GroupsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	group, err := gc.groups.GetByID(ctx, id)
	if err != nil {
		respondServiceError(c, err, "delete group")
		return
	}
	if err := gc.groups.Delete(ctx, id); err != nil {
		respondServiceError(c, err, "delete group")
		return
	}

	if gc.auditLog != nil {
		gc.auditLog.LogDelete("group", id, group.Name, c.ClientIP())
	}
	c.Status(http.StatusNoContent)
}

// Words handles GET /api/groups/:id/words
func (gc *GroupsController) Words(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req, ok := parsePageRequest(c, gc.perPage)
	if !ok {
		return
	}
	sort, err := words.ParseSort(c.Query("sort_by"), c.Query("order"))
	if err != nil {
		respondServiceError(c, err, "list group words")
		return
	}

	items, total, err := gc.words.ListByGroup(c.Request.Context(), id, req, sort)
	if err != nil {
		respondServiceError(c, err, "list group words")
		return
	}
	respondPage(c, items, req, total)
}

// AddWord handles POST /api/groups/:id/words
func (gc *GroupsController) AddWord(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body addWordRequest
	if !bindJSON(c, &body) {
		return
	}
	if body.WordID == 0 {
		respondBadRequest(c, "word_id is required")
		return
	}

	if err := gc.groups.AddWord(c.Request.Context(), id, body.WordID); err != nil {
		respondServiceError(c, err, "add word to group")
		return
	}
	c.JSON(http.StatusOK, gin.H{"group_id": id, "word_id": body.WordID})
}

// RemoveWord handles DELETE /api/groups/:id/words/:word_id
func (gc *GroupsController) RemoveWord(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	wordID, ok := parseIDParam(c, "word_id")
	if !ok {
		return
	}

	if err := gc.groups.RemoveWord(c.Request.Context(), id, wordID); err != nil {
		respondServiceError(c, err, "remove word from group")
		return
	}
	c.Status(http.StatusNoContent)
}

// StudySessions handles GET /api/groups/:id/study_sessions
func (gc *GroupsController) StudySessions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req, ok := parsePageRequest(c, gc.perPage)
	if !ok {
		return
	}

	items, total, err := gc.sessions.ListForGroup(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "list group sessions")
		return
	}
	respondPage(c, items, req, total)
}
