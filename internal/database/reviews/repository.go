// Package reviews provides database operations for word review items.
//
// Review rows are append-only: they are created and deleted, never updated.
//
// # Interface Implementation
//
//	var _ http.ReviewStore = (*Repository)(nil)
package reviews

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/langportal/internal/database"
	"github.com/mrlokans/langportal/internal/entities"
	"github.com/mrlokans/langportal/internal/pagination"
)

// CreateInput describes one answer. Correct is a pointer so a missing value
// can be told apart from false.
type CreateInput struct {
	StudySessionID uint
	WordID         uint
	Correct        *bool
}

// Repository handles all word review database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

type Option func(*Repository)

// WithClock overrides the time source used for new reviews.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB, opts ...Option) *Repository {
	r := &Repository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns one page of review rows, newest first.
func (r *Repository) List(ctx context.Context, req pagination.Request) ([]entities.WordReviewItem, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.WordReviewItem{}).Count(&total).Error; err != nil {
		return nil, 0, database.MapError(err, "word reviews", 0)
	}

	var items []entities.WordReviewItem
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(req.Limit()).
		Offset(req.Offset()).
		Find(&items).Error
	if err != nil {
		return nil, 0, database.MapError(err, "word reviews", 0)
	}
	return items, total, nil
}

// GetByID returns one review row.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.WordReviewItem, error) {
	var item entities.WordReviewItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, database.MapError(err, "word review", id)
	}
	return &item, nil
}

// Create records an answer for a word within an existing session.
func (r *Repository) Create(ctx context.Context, in CreateInput) (*entities.WordReviewItem, error) {
	switch {
	case in.StudySessionID == 0:
		return nil, entities.NewValidationError("study_session_id", "is required")
	case in.WordID == 0:
		return nil, entities.NewValidationError("word_id", "is required")
	case in.Correct == nil:
		return nil, entities.NewValidationError("correct", "is required")
	}

	item := &entities.WordReviewItem{
		WordID:         in.WordID,
		StudySessionID: in.StudySessionID,
		Correct:        *in.Correct,
		CreatedAt:      r.now().UTC(),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := database.RequireExists(ctx, tx, &entities.StudySession{}, "study session", in.StudySessionID); err != nil {
			return err
		}
		if err := database.RequireExists(ctx, tx, &entities.Word{}, "word", in.WordID); err != nil {
			return err
		}
		return database.MapError(tx.Create(item).Error, "word review", 0)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a single review row.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.WordReviewItem{}, id)
	if res.Error != nil {
		return database.MapError(res.Error, "word review", id)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("word review %d: %w", id, entities.ErrNotFound)
	}
	return nil
}
