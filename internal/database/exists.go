package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/langportal/internal/entities"
)

// RequireExists returns an ErrNotFound-wrapping error when no row of model
// has the given id.
func RequireExists(ctx context.Context, db *gorm.DB, model any, entity string, id uint) error {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return MapError(err, entity, id)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, entities.ErrNotFound)
	}
	return nil
}
