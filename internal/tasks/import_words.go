package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/langportal/internal/importers"
)

// GroupWordImporter adds a vocabulary list to an existing group.
type GroupWordImporter interface {
	Import(ctx context.Context, groupID uint, items []importers.VocabItem) (*importers.Result, error)
}

// ImportGroupWordsTask imports a vocabulary list into one group.
type ImportGroupWordsTask struct {
	GroupID uint                  `json:"group_id"`
	Words   []importers.VocabItem `json:"words"`
}

// Config returns the queue configuration. Imports are not idempotent, so a
// failed run is never retried.
func (t ImportGroupWordsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "import_group_words",
		MaxAttempts: 1,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ImportGroupWordsProcessor creates a processor function for ImportGroupWordsTask.
func ImportGroupWordsProcessor(importer GroupWordImporter) backlite.QueueProcessor[ImportGroupWordsTask] {
	return func(ctx context.Context, task ImportGroupWordsTask) error {
		if importer == nil {
			return fmt.Errorf("word importer not configured")
		}

		result, err := importer.Import(ctx, task.GroupID, task.Words)
		if err != nil {
			return fmt.Errorf("import words into group %d: %w", task.GroupID, err)
		}

		log.Printf("[TASK] Imported %d words into group %d", result.WordsImported, task.GroupID)
		return nil
	}
}

// NewImportGroupWordsQueue creates a backlite queue for word imports.
func NewImportGroupWordsQueue(importer GroupWordImporter) backlite.Queue {
	return backlite.NewQueue(ImportGroupWordsProcessor(importer))
}
