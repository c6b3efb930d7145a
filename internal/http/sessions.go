package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionsController serves /api/study_sessions.
type SessionsController struct {
	store   SessionStore
	perPage int
}

func NewSessionsController(store SessionStore, perPage int) *SessionsController {
	return &SessionsController{store: store, perPage: perPage}
}

type createSessionRequest struct {
	GroupID         uint `json:"group_id"`
	StudyActivityID uint `json:"study_activity_id"`
}

// List handles GET /api/study_sessions
func (sc *SessionsController) List(c *gin.Context) {
	req, ok := parsePageRequest(c, sc.perPage)
	if !ok {
		return
	}

	items, total, err := sc.store.List(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "list study sessions")
		return
	}
	respondPage(c, items, req, total)
}

// Get handles GET /api/study_sessions/:id
func (sc *SessionsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := sc.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get study session")
		return
	}
	c.JSON(http.StatusOK, session)
}

// Create handles POST /api/study_sessions
func (sc *SessionsController) Create(c *gin.Context) {
	var body createSessionRequest
	if !bindJSON(c, &body) {
		return
	}

	session, err := sc.store.Create(c.Request.Context(), body.GroupID, body.StudyActivityID)
	if err != nil {
		respondServiceError(c, err, "create study session")
		return
	}
	respondCreated(c, session)
}

// Words handles GET /api/study_sessions/:id/words
func (sc *SessionsController) Words(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req, ok := parsePageRequest(c, sc.perPage)
	if !ok {
		return
	}

	items, total, err := sc.store.ReviewedWords(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "list reviewed words")
		return
	}
	respondPage(c, items, req, total)
}
