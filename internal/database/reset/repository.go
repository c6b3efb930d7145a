// Package reset clears study history from the store.
//
// Both operations run in a single transaction and delete child rows before
// their parents so foreign keys hold at every step. Words and groups are
// never touched.
//
// # Usage
//
//	repo := reset.NewRepository(db)
//	result, err := repo.ResetHistory(ctx)
package reset

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/langportal/internal/database"
	"github.com/mrlokans/langportal/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type step struct {
	table string
	model any
	count *int64
}

func (r *Repository) run(ctx context.Context, steps []step) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, s := range steps {
			res := all.Delete(s.model)
			if res.Error != nil {
				return database.MapError(res.Error, s.table, 0)
			}
			*s.count = res.RowsAffected
		}
		return nil
	})
}

// ResetHistory removes every review and study session.
func (r *Repository) ResetHistory(ctx context.Context) (*entities.ResetResult, error) {
	var result entities.ResetResult
	err := r.run(ctx, []step{
		{"word_review_items", &entities.WordReviewItem{}, &result.WordReviewItems},
		{"study_sessions", &entities.StudySession{}, &result.StudySessions},
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// FullReset removes reviews, sessions, activities and group memberships.
func (r *Repository) FullReset(ctx context.Context) (*entities.ResetResult, error) {
	var result entities.ResetResult
	err := r.run(ctx, []step{
		{"word_review_items", &entities.WordReviewItem{}, &result.WordReviewItems},
		{"study_sessions", &entities.StudySession{}, &result.StudySessions},
		{"study_activities", &entities.StudyActivity{}, &result.StudyActivities},
		{"words_groups", &entities.WordGroup{}, &result.WordsGroups},
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
