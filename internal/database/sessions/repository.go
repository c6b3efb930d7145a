// Package sessions provides database operations for study sessions.
//
// This package implements the SessionStore interface defined in internal/http/sessions.go.
//
// # Interface Implementation
//
//	var _ http.SessionStore = (*Repository)(nil)
//
// # Usage
//
//	repo := sessions.NewRepository(db)
//	session, err := repo.Create(ctx, groupID, activityID)
//	words, total, err := repo.ReviewedWords(ctx, session.ID, pagination.NewRequest(1, 100))
package sessions

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/langportal/internal/database"
	"github.com/mrlokans/langportal/internal/entities"
	"github.com/mrlokans/langportal/internal/pagination"
)

// Repository handles all study session database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

type Option func(*Repository)

// WithClock overrides the time source used for new sessions.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository creates a new sessions repository.
func NewRepository(db *gorm.DB, opts ...Option) *Repository {
	r := &Repository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func summarySelect() sq.SelectBuilder {
	return sq.Select(
		"s.id", "s.group_id", "g.name AS group_name",
		"s.study_activity_id", "a.name AS activity_name", "s.created_at",
		"COUNT(wri.id) AS review_items_count",
		"COUNT(CASE WHEN wri.correct = 1 THEN 1 END) AS correct_count",
	).
		From("study_sessions s").
		Join(`"groups" g ON g.id = s.group_id`).
		Join("study_activities a ON a.id = s.study_activity_id").
		LeftJoin("word_review_items wri ON wri.study_session_id = s.id").
		GroupBy("s.id")
}

func (r *Repository) scan(ctx context.Context, b sq.SelectBuilder) ([]entities.StudySessionSummary, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build session query: %w", err)
	}
	var items []entities.StudySessionSummary
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&items).Error; err != nil {
		return nil, database.MapError(err, "study sessions", 0)
	}
	return items, nil
}

// page lists sessions matching where, newest first.
func (r *Repository) page(ctx context.Context, where sq.Eq, req pagination.Request) ([]entities.StudySessionSummary, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&entities.StudySession{})
	for col, val := range where {
		q = q.Where(col+" = ?", val)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, database.MapError(err, "study sessions", 0)
	}

	b := summarySelect()
	for col, val := range where {
		b = b.Where(sq.Eq{"s." + col: val})
	}
	items, err := r.scan(ctx, b.
		OrderBy("s.created_at DESC", "s.id ASC").
		Limit(uint64(req.Limit())).
		Offset(uint64(req.Offset())))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// List returns one page of all sessions.
func (r *Repository) List(ctx context.Context, req pagination.Request) ([]entities.StudySessionSummary, int64, error) {
	return r.page(ctx, sq.Eq{}, req)
}

// ListForGroup returns one page of the group's sessions.
func (r *Repository) ListForGroup(ctx context.Context, groupID uint, req pagination.Request) ([]entities.StudySessionSummary, int64, error) {
	if err := database.RequireExists(ctx, r.db, &entities.Group{}, "group", groupID); err != nil {
		return nil, 0, err
	}
	return r.page(ctx, sq.Eq{"group_id": groupID}, req)
}

// ListForActivity returns one page of the activity's sessions.
func (r *Repository) ListForActivity(ctx context.Context, activityID uint, req pagination.Request) ([]entities.StudySessionSummary, int64, error) {
	if err := database.RequireExists(ctx, r.db, &entities.StudyActivity{}, "study activity", activityID); err != nil {
		return nil, 0, err
	}
	return r.page(ctx, sq.Eq{"study_activity_id": activityID}, req)
}

// GetByID returns one annotated session.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.StudySessionSummary, error) {
	items, err := r.scan(ctx, summarySelect().Where(sq.Eq{"s.id": id}))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("study session %d: %w", id, entities.ErrNotFound)
	}
	return &items[0], nil
}

// Create starts a new session for a group and activity.
func (r *Repository) Create(ctx context.Context, groupID, activityID uint) (*entities.StudySession, error) {
	if groupID == 0 {
		return nil, entities.NewValidationError("group_id", "is required")
	}
	if activityID == 0 {
		return nil, entities.NewValidationError("study_activity_id", "is required")
	}

	session := &entities.StudySession{
		GroupID:         groupID,
		StudyActivityID: activityID,
		CreatedAt:       r.now().UTC(),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := database.RequireExists(ctx, tx, &entities.Group{}, "group", groupID); err != nil {
			return err
		}
		if err := database.RequireExists(ctx, tx, &entities.StudyActivity{}, "study activity", activityID); err != nil {
			return err
		}
		return database.MapError(tx.Omit(clause.Associations).Create(session).Error, "study session", 0)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// ReviewedWords returns the words reviewed in a session with correct and
// wrong counts restricted to that session.
func (r *Repository) ReviewedWords(ctx context.Context, sessionID uint, req pagination.Request) ([]entities.WordSummary, int64, error) {
	if err := database.RequireExists(ctx, r.db, &entities.StudySession{}, "study session", sessionID); err != nil {
		return nil, 0, err
	}

	var total int64
	err := r.db.WithContext(ctx).
		Model(&entities.WordReviewItem{}).
		Where("study_session_id = ?", sessionID).
		Distinct("word_id").
		Count(&total).Error
	if err != nil {
		return nil, 0, database.MapError(err, "study session", sessionID)
	}

	query, args, err := sq.Select(
		"w.id", "w.kanji", "w.romaji", "w.english", "w.parts",
		"COUNT(CASE WHEN wri.correct = 1 THEN 1 END) AS correct_count",
		"COUNT(CASE WHEN wri.correct = 0 THEN 1 END) AS wrong_count",
	).
		From("word_review_items wri").
		Join("words w ON w.id = wri.word_id").
		Where(sq.Eq{"wri.study_session_id": sessionID}).
		GroupBy("w.id").
		OrderBy("w.id ASC").
		Limit(uint64(req.Limit())).
		Offset(uint64(req.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build reviewed words query: %w", err)
	}

	var items []entities.WordSummary
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&items).Error; err != nil {
		return nil, 0, database.MapError(err, "study session", sessionID)
	}
	return items, total, nil
}
