// Package activities provides database operations for study activities.
//
// This package implements the ActivityStore interface defined in internal/http/activities.go.
//
// # Interface Implementation
//
//	var _ http.ActivityStore = (*Repository)(nil)
//
// # Usage
//
//	repo := activities.NewRepository(db)
//	if err := repo.CheckDeletable(ctx, id); err != nil {
//	    // sessions still reference the activity
//	}
package activities

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/mrlokans/langportal/internal/database"
	"github.com/mrlokans/langportal/internal/entities"
	"github.com/mrlokans/langportal/internal/pagination"
)

type CreateInput struct {
	Name         string
	ThumbnailURL *string
	Description  *string
}

// UpdateInput holds a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name         *string
	ThumbnailURL *string
	Description  *string
}

// Repository handles all study activity database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new activities repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func summarySelect() sq.SelectBuilder {
	return sq.Select(
		"a.id", "a.name", "a.thumbnail_url", "a.description",
		"COUNT(s.id) AS total_sessions",
		"COUNT(DISTINCT s.group_id) AS unique_groups",
	).
		From("study_activities a").
		LeftJoin("study_sessions s ON s.study_activity_id = a.id").
		GroupBy("a.id")
}

func (r *Repository) scan(ctx context.Context, b sq.SelectBuilder) ([]entities.StudyActivitySummary, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build activity query: %w", err)
	}
	var items []entities.StudyActivitySummary
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&items).Error; err != nil {
		return nil, database.MapError(err, "study activities", 0)
	}
	return items, nil
}

// List returns one page of activities with their session counts.
func (r *Repository) List(ctx context.Context, req pagination.Request) ([]entities.StudyActivitySummary, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.StudyActivity{}).Count(&total).Error; err != nil {
		return nil, 0, database.MapError(err, "study activities", 0)
	}

	items, err := r.scan(ctx, summarySelect().
		OrderBy("a.id ASC").
		Limit(uint64(req.Limit())).
		Offset(uint64(req.Offset())))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetByID returns one activity with its session and group counts.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.StudyActivitySummary, error) {
	items, err := r.scan(ctx, summarySelect().Where(sq.Eq{"a.id": id}))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("study activity %d: %w", id, entities.ErrNotFound)
	}
	return &items[0], nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", entities.NewValidationError("name", "is required")
	}
	return name, nil
}

// Create inserts a new activity.
func (r *Repository) Create(ctx context.Context, in CreateInput) (*entities.StudyActivity, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	activity := &entities.StudyActivity{Name: name, ThumbnailURL: in.ThumbnailURL, Description: in.Description}
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return nil, database.MapError(err, "study activity", 0)
	}
	return activity, nil
}

// Ensure creates the activity unless one with the same name exists. The
// returned flag reports whether a row was inserted.
func (r *Repository) Ensure(ctx context.Context, in CreateInput) (*entities.StudyActivity, bool, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, false, err
	}
	var existing entities.StudyActivity
	err = r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, database.MapError(err, "study activity", 0)
	}
	activity, err := r.Create(ctx, in)
	if err != nil {
		return nil, false, err
	}
	return activity, true, nil
}

// Update applies a partial update.
func (r *Repository) Update(ctx context.Context, id uint, in UpdateInput) (*entities.StudyActivity, error) {
	updates := map[string]any{}
	if in.Name != nil {
		name, err := normalizeName(*in.Name)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if in.ThumbnailURL != nil {
		updates["thumbnail_url"] = *in.ThumbnailURL
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}

	var activity entities.StudyActivity
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&activity, id).Error; err != nil {
			return database.MapError(err, "study activity", id)
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&entities.StudyActivity{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return database.MapError(err, "study activity", id)
		}
		return tx.First(&activity, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// CheckDeletable returns a conflict while any study session references the
// activity.
func (r *Repository) CheckDeletable(ctx context.Context, id uint) error {
	return checkDeletable(ctx, r.db, id)
}

func checkDeletable(ctx context.Context, tx *gorm.DB, id uint) error {
	if err := database.RequireExists(ctx, tx, &entities.StudyActivity{}, "study activity", id); err != nil {
		return err
	}
	var n int64
	if err := tx.WithContext(ctx).Model(&entities.StudySession{}).Where("study_activity_id = ?", id).Count(&n).Error; err != nil {
		return database.MapError(err, "study activity", id)
	}
	if n > 0 {
		return fmt.Errorf("study activity %d: %w", id, entities.NewConflictError("cannot delete activity that has study sessions"))
	}
	return nil
}

// Delete removes an activity that no session references.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkDeletable(ctx, tx, id); err != nil {
			return err
		}
		return database.MapError(tx.Delete(&entities.StudyActivity{}, id).Error, "study activity", id)
	})
}
