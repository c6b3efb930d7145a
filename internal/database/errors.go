package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/mrlokans/langportal/internal/entities"
)

// MapError classifies a gorm/sqlite error into the entities error taxonomy.
// Context cancellation passes through unchanged so callers can tell an
// abandoned request from a store failure.
func MapError(err error, entity string, id uint) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %d: %w", entity, id, err)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", entity, id, entities.ErrNotFound)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%s %d: %w", entity, id, entities.NewConflictError(entity+" already exists"))
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%s %d: %w", entity, id, entities.NewConflictError(entity+" is referenced by other records"))
		}
	}

	// Errors already classified by a repository keep their meaning.
	if errors.Is(err, entities.ErrNotFound) || errors.Is(err, entities.ErrConflict) ||
		errors.Is(err, entities.ErrValidation) || errors.Is(err, entities.ErrStore) {
		return err
	}

	return fmt.Errorf("%s %d: %w: %v", entity, id, entities.ErrStore, err)
}
