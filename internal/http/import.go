package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/langportal/internal/importers"
	"github.com/mrlokans/langportal/internal/tasks"
)

// DefaultMaxImportBytes bounds an import body when no limit is configured.
const DefaultMaxImportBytes int64 = 1 << 20

// ImportController accepts vocabulary lists for a group. With a task queue
// the import runs in the background; otherwise it runs inline.
type ImportController struct {
	groups   GroupStore
	queue    TaskQueue
	importer GroupImporter
	maxBytes int64
}

func NewImportController(groups GroupStore, queue TaskQueue, importer GroupImporter, maxBytes int64) *ImportController {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImportBytes
	}
	return &ImportController{groups: groups, queue: queue, importer: importer, maxBytes: maxBytes}
}

// ImportGroupWords handles POST /api/groups/:id/import
// The body is a JSON array of {kanji, romaji, english, parts} entries.
func (ic *ImportController) ImportGroupWords(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, ic.maxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: "vocabulary list is too large",
				Code:  "payload_too_large",
			})
			return
		}
		respondBadRequest(c, "failed to read request body")
		return
	}

	items, err := importers.ParseVocabulary(bytes.NewReader(body))
	if err != nil {
		respondServiceError(c, err, "parse vocabulary")
		return
	}
	if len(items) == 0 {
		respondBadRequest(c, "no words to import")
		return
	}

	ctx := c.Request.Context()
	if _, err := ic.groups.GetByID(ctx, id); err != nil {
		respondServiceError(c, err, "import words")
		return
	}

	if ic.queue != nil {
		taskID, err := ic.queue.Enqueue(ctx, tasks.ImportGroupWordsTask{GroupID: id, Words: items})
		if err != nil {
			respondInternalError(c, err, "enqueue import")
			return
		}
		respondAccepted(c, "import enqueued", gin.H{
			"task_id":  taskID,
			"group_id": id,
			"words":    len(items),
		})
		return
	}

	if ic.importer == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "imports are not available", Code: "unavailable"})
		return
	}
	result, err := ic.importer.Import(ctx, id, items)
	if err != nil {
		respondServiceError(c, err, "import words")
		return
	}
	respondCreated(c, result)
}
