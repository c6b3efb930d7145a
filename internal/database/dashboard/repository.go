// Package dashboard computes the aggregate statistics shown on the portal
// landing page.
//
// # Interface Implementation
//
//	var _ http.DashboardStore = (*Repository)(nil)
//
// # Usage
//
//	repo := dashboard.NewRepository(db, dashboard.WithLocation(loc))
//	stats, err := repo.QuickStats(ctx)
package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/mrlokans/langportal/internal/database"
	"github.com/mrlokans/langportal/internal/entities"
)

// Repository runs read-only dashboard queries.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
	loc *time.Location
}

type Option func(*Repository)

// WithClock overrides the time source used to find "today".
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithLocation sets the timezone in which study days are counted.
func WithLocation(loc *time.Location) Option {
	return func(r *Repository) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// NewRepository creates a dashboard repository. Days are counted in UTC
// unless WithLocation is given.
func NewRepository(db *gorm.DB, opts ...Option) *Repository {
	r := &Repository{db: db, now: time.Now, loc: time.UTC}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LastSession returns the newest study session. It returns
// entities.ErrNoStudySessions when none exist.
func (r *Repository) LastSession(ctx context.Context) (*entities.LastStudySession, error) {
	query, args, err := sq.Select("s.id", "s.group_id", "g.name AS group_name", "s.study_activity_id", "s.created_at").
		From("study_sessions s").
		Join(`"groups" g ON g.id = s.group_id`).
		OrderBy("s.created_at DESC", "s.id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build last session query: %w", err)
	}

	var rows []entities.LastStudySession
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, database.MapError(err, "study sessions", 0)
	}
	if len(rows) == 0 {
		return nil, entities.ErrNoStudySessions
	}
	return &rows[0], nil
}

// StudyProgress reports how many distinct words have been reviewed out of
// all available words.
func (r *Repository) StudyProgress(ctx context.Context) (*entities.StudyProgress, error) {
	var progress entities.StudyProgress

	err := r.db.WithContext(ctx).
		Model(&entities.WordReviewItem{}).
		Distinct("word_id").
		Count(&progress.TotalWordsStudied).Error
	if err != nil {
		return nil, database.MapError(err, "word reviews", 0)
	}

	if err := r.db.WithContext(ctx).Model(&entities.Word{}).Count(&progress.TotalAvailableWords).Error; err != nil {
		return nil, database.MapError(err, "words", 0)
	}
	return &progress, nil
}

type reviewTotals struct {
	Correct int64
	Total   int64
}

// QuickStats returns the success rate, session and group counts and the
// current study streak.
func (r *Repository) QuickStats(ctx context.Context) (*entities.QuickStats, error) {
	var totals reviewTotals
	err := r.db.WithContext(ctx).
		Model(&entities.WordReviewItem{}).
		Select("COUNT(CASE WHEN correct = 1 THEN 1 END) AS correct, COUNT(id) AS total").
		Scan(&totals).Error
	if err != nil {
		return nil, database.MapError(err, "word reviews", 0)
	}

	var stats entities.QuickStats
	stats.SuccessRate = SuccessRate(totals.Correct, totals.Total)

	if err := r.db.WithContext(ctx).Model(&entities.StudySession{}).Count(&stats.TotalStudySessions).Error; err != nil {
		return nil, database.MapError(err, "study sessions", 0)
	}

	err = r.db.WithContext(ctx).
		Model(&entities.StudySession{}).
		Distinct("group_id").
		Count(&stats.TotalActiveGroups).Error
	if err != nil {
		return nil, database.MapError(err, "study sessions", 0)
	}

	streak, err := r.studyStreak(ctx)
	if err != nil {
		return nil, database.MapError(err, "study sessions", 0)
	}
	stats.StudyStreakDays = streak

	return &stats, nil
}

const (
	// streakWindowDays is the first lookback; it doubles while the streak
	// fills the whole window.
	streakWindowDays = 32
	// Sessions are grouped into 15 minute buckets in SQL. Every real UTC
	// offset is a multiple of 15 minutes, so a bucket never spans two local
	// days.
	streakBucketSeconds = 15 * 60
)

// studyStreak loads the distinct session buckets of the recent past and
// walks back from today. The result set is bounded by the lookback window,
// not by the number of sessions.
func (r *Repository) studyStreak(ctx context.Context) (int, error) {
	now := r.now().In(r.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.loc)
	bucket := fmt.Sprintf("CAST(strftime('%%s', created_at) AS INTEGER) / %d", streakBucketSeconds)

	for window := streakWindowDays; ; window *= 2 {
		since := today.AddDate(0, 0, -(window - 1))

		var buckets []int64
		err := r.db.WithContext(ctx).
			Model(&entities.StudySession{}).
			Where("CAST(strftime('%s', created_at) AS INTEGER) >= ?", since.Unix()).
			Distinct().
			Pluck(bucket, &buckets).Error
		if err != nil {
			return 0, err
		}

		times := make([]time.Time, len(buckets))
		for i, b := range buckets {
			times[i] = time.Unix(b*streakBucketSeconds, 0)
		}
		if streak := Streak(times, now, r.loc); streak < window {
			return streak, nil
		}
	}
}

// SuccessRate returns 100*correct/total rounded to one decimal, or 0 when
// total is zero.
func SuccessRate(correct, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)*1000/float64(total)) / 10
}

// Streak counts consecutive calendar days in loc, ending today, that contain
// at least one of times. A day without a session today gives 0.
func Streak(times []time.Time, now time.Time, loc *time.Location) int {
	days := make(map[string]struct{}, len(times))
	for _, t := range times {
		days[t.In(loc).Format(time.DateOnly)] = struct{}{}
	}

	streak := 0
	day := now.In(loc)
	for {
		if _, ok := days[day.Format(time.DateOnly)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}
