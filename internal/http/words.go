package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/langportal/internal/analyzer"
	"github.com/mrlokans/langportal/internal/database/words"
)

// WordsController serves the /api/words endpoints.
type WordsController struct {
	store    WordStore
	auditLog AuditLog
	analyzer WordAnalyzer
	perPage  int
}

func NewWordsController(store WordStore, auditLog AuditLog, analyzer WordAnalyzer, perPage int) *WordsController {
	return &WordsController{store: store, auditLog: auditLog, analyzer: analyzer, perPage: perPage}
}

type createWordRequest struct {
	Kanji    string          `json:"kanji"`
	Romaji   string          `json:"romaji"`
	English  string          `json:"english"`
	Parts    json.RawMessage `json:"parts"`
	GroupIDs []uint          `json:"group_ids"`
}

// updateWordRequest uses pointers so omitted fields stay untouched. Parts
// keeps JSON null as a literal, which clears the stored value.
type updateWordRequest struct {
	Kanji   *string         `json:"kanji"`
	Romaji  *string         `json:"romaji"`
	English *string         `json:"english"`
	Parts   json.RawMessage `json:"parts"`
}

// WordAnalysis is the body of GET /api/words/:id/analysis.
type WordAnalysis struct {
	WordID uint             `json:"word_id"`
	Kanji  string           `json:"kanji"`
	Tokens []analyzer.Token `json:"tokens"`
}

// List handles GET /api/words
func (wc *WordsController) List(c *gin.Context) {
	req, ok := parsePageRequest(c, wc.perPage)
	if !ok {
		return
	}
	sort, err := words.ParseSort(c.Query("sort_by"), c.Query("order"))
	if err != nil {
		respondServiceError(c, err, "list words")
		return
	}

	items, total, err := wc.store.List(c.Request.Context(), req, sort)
	if err != nil {
		respondServiceError(c, err, "list words")
		return
	}
	respondPage(c, items, req, total)
}

// Get handles GET /api/words/:id
func (wc *WordsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	word, err := wc.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get word")
		return
	}
	c.JSON(http.StatusOK, word)
}

// Create handles POST /api/words
func (wc *WordsController) Create(c *gin.Context) {
	var body createWordRequest
	if !bindJSON(c, &body) {
		return
	}

	word, err := wc.store.Create(c.Request.Context(), words.CreateInput{
		Kanji:    body.Kanji,
		Romaji:   body.Romaji,
		English:  body.English,
		Parts:    body.Parts,
		GroupIDs: body.GroupIDs,
	})
	if err != nil {
		respondServiceError(c, err, "create word")
		return
	}
	respondCreated(c, word)
}

// Update handles PUT /api/words/:id
func (wc *WordsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body updateWordRequest
	if !bindJSON(c, &body) {
		return
	}

	word, err := wc.store.Update(c.Request.Context(), id, words.UpdateInput{
		Kanji:   body.Kanji,
		Romaji:  body.Romaji,
		English: body.English,
		Parts:   body.Parts,
	})
	if err != nil {
		respondServiceError(c, err, "update word")
		return
	}
	c.JSON(http.StatusOK, word)
}

// Delete handles DELETE /api/words/:id
func (wc *WordsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	word, err := wc.store.GetByID(ctx, id)
	if err != nil {
		respondServiceError(c, err, "delete word")
		return
	}
	if err := wc.store.Delete(ctx, id); err != nil {
		respondServiceError(c, err, "delete word")
		return
	}

	if wc.auditLog != nil {
		wc.auditLog.LogDelete("word", id, word.Kanji, c.ClientIP())
	}
	c.Status(http.StatusNoContent)
}

// Analysis handles GET /api/words/:id/analysis
func (wc *WordsController) Analysis(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	word, err := wc.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "analyze word")
		return
	}

	tokens := wc.analyzer.Analyze(word.Kanji)
	if tokens == nil {
		tokens = []analyzer.Token{}
	}
	c.JSON(http.StatusOK, WordAnalysis{WordID: word.ID, Kanji: word.Kanji, Tokens: tokens})
}
