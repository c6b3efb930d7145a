package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/langportal/internal/database/reviews"
	"github.com/mrlokans/langportal/internal/entities"
)

// ReviewsController serves /api/word_reviews and the session-scoped review
// entry point.
type ReviewsController struct {
	store   ReviewStore
	perPage int
}

func NewReviewsController(store ReviewStore, perPage int) *ReviewsController {
	return &ReviewsController{store: store, perPage: perPage}
}

// Correct is kept raw so a missing value and a non-boolean value can be
// reported as field errors instead of a generic decode failure.
type reviewRequest struct {
	StudySessionID uint            `json:"study_session_id"`
	WordID         uint            `json:"word_id"`
	Correct        json.RawMessage `json:"correct"`
}

func parseCorrect(raw json.RawMessage) (*bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, entities.NewValidationError("correct", "is required")
	}
	var v bool
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, entities.NewValidationError("correct", "must be a boolean")
	}
	return &v, nil
}

func (rc *ReviewsController) record(c *gin.Context, sessionID, wordID uint, raw json.RawMessage) {
	correct, err := parseCorrect(raw)
	if err != nil {
		respondServiceError(c, err, "record review")
		return
	}

	item, err := rc.store.Create(c.Request.Context(), reviews.CreateInput{
		StudySessionID: sessionID,
		WordID:         wordID,
		Correct:        correct,
	})
	if err != nil {
		respondServiceError(c, err, "record review")
		return
	}
	respondCreated(c, item)
}

// Create handles POST /api/word_reviews
func (rc *ReviewsController) Create(c *gin.Context) {
	var body reviewRequest
	if !bindJSON(c, &body) {
		return
	}
	rc.record(c, body.StudySessionID, body.WordID, body.Correct)
}

// ReviewSessionWord handles POST /api/study_sessions/:id/words/:word_id/review
func (rc *ReviewsController) ReviewSessionWord(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	wordID, ok := parseIDParam(c, "word_id")
	if !ok {
		return
	}
	var body reviewRequest
	if !bindJSON(c, &body) {
		return
	}
	rc.record(c, sessionID, wordID, body.Correct)
}

// List handles GET /api/word_reviews
func (rc *ReviewsController) List(c *gin.Context) {
	req, ok := parsePageRequest(c, rc.perPage)
	if !ok {
		return
	}

	items, total, err := rc.store.List(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "list word reviews")
		return
	}
	respondPage(c, items, req, total)
}

// Get handles GET /api/word_reviews/:id
func (rc *ReviewsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := rc.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get word review")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /api/word_reviews/:id
func (rc *ReviewsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := rc.store.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete word review")
		return
	}
	c.Status(http.StatusNoContent)
}
