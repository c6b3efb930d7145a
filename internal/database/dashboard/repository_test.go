package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/langportal/internal/database/testhelper"
	"github.com/mrlokans/langportal/internal/entities"
)

func TestRepository_LastSession(t *testing.T) {
	db := testhelper.NewTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	_, err := repo.LastSession(ctx)
	require.ErrorIs(t, err, entities.ErrNoStudySessions)
	assert.NotErrorIs(t, err, entities.ErrNotFound)

	group := testhelper.CreateGroup(t, db, "Greetings")
	activity := testhelper.CreateActivity(t, db, "Quiz")
	base := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	testhelper.CreateSession(t, db, group.ID, activity.ID, base)
	latest := testhelper.CreateSession(t, db, group.ID, activity.ID, base.Add(2*time.Hour))

	last, err := repo.LastSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, latest.ID, last.ID)
	assert.Equal(t, "Greetings", last.GroupName)
	assert.Equal(t, activity.ID, last.StudyActivityID)
	assert.True(t, last.CreatedAt.Equal(base.Add(2*time.Hour)))
}

func TestRepository_StudyProgress(t *testing.T) {
	db := testhelper.NewTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	progress, err := repo.StudyProgress(ctx)
	require.NoError(t, err)
	assert.Zero(t, progress.TotalWordsStudied)
	assert.Zero(t, progress.TotalAvailableWords)

	group := testhelper.CreateGroup(t, db, "G")
	activity := testhelper.CreateActivity(t, db, "Quiz")
	w1 := testhelper.CreateWord(t, db, "一", "ichi", "one")
	testhelper.CreateWord(t, db, "二", "ni", "two")
	session := testhelper.CreateSession(t, db, group.ID, activity.ID, time.Now())
	testhelper.CreateReview(t, db, w1.ID, session.ID, true)
	testhelper.CreateReview(t, db, w1.ID, session.ID, false)

	progress, err = repo.StudyProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), progress.TotalWordsStudied)
	assert.Equal(t, int64(2), progress.TotalAvailableWords)
}

func TestRepository_QuickStats(t *testing.T) {
	db := testhelper.NewTestDB(t)
	now := time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC)
	repo := NewRepository(db.DB, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	stats, err := repo.QuickStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.QuickStats{}, *stats)

	g1 := testhelper.CreateGroup(t, db, "A")
	g2 := testhelper.CreateGroup(t, db, "B")
	activity := testhelper.CreateActivity(t, db, "Quiz")
	word := testhelper.CreateWord(t, db, "犬", "inu", "dog")

	today := testhelper.CreateSession(t, db, g1.ID, activity.ID, now.Add(-time.Hour))
	testhelper.CreateSession(t, db, g2.ID, activity.ID, now.AddDate(0, 0, -1))
	testhelper.CreateSession(t, db, g1.ID, activity.ID, now.AddDate(0, 0, -3))

	testhelper.CreateReview(t, db, word.ID, today.ID, true)
	testhelper.CreateReview(t, db, word.ID, today.ID, true)
	testhelper.CreateReview(t, db, word.ID, today.ID, false)

	stats, err = repo.QuickStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 66.7, stats.SuccessRate)
	assert.Equal(t, int64(3), stats.TotalStudySessions)
	assert.Equal(t, int64(2), stats.TotalActiveGroups)
	assert.Equal(t, 2, stats.StudyStreakDays)
}

func TestRepository_QuickStats_LongStreak(t *testing.T) {
	db := testhelper.NewTestDB(t)
	now := time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC)
	repo := NewRepository(db.DB, WithClock(func() time.Time { return now }))

	group := testhelper.CreateGroup(t, db, "A")
	activity := testhelper.CreateActivity(t, db, "Quiz")
	days := streakWindowDays + 8
	for i := 0; i < days; i++ {
		testhelper.CreateSession(t, db, group.ID, activity.ID, now.AddDate(0, 0, -i))
		testhelper.CreateSession(t, db, group.ID, activity.ID, now.AddDate(0, 0, -i).Add(-time.Minute))
	}
	testhelper.CreateSession(t, db, group.ID, activity.ID, now.AddDate(0, 0, -days-1))

	stats, err := repo.QuickStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, days, stats.StudyStreakDays)
}

func TestRepository_QuickStats_StreakInHalfHourZone(t *testing.T) {
	db := testhelper.NewTestDB(t)
	kolkata := time.FixedZone("IST", 5*3600+1800)
	// 00:10 local on May 10 is 18:40 UTC on May 9.
	now := time.Date(2025, 5, 10, 0, 10, 0, 0, kolkata)
	repo := NewRepository(db.DB, WithClock(func() time.Time { return now }), WithLocation(kolkata))

	group := testhelper.CreateGroup(t, db, "A")
	activity := testhelper.CreateActivity(t, db, "Quiz")
	testhelper.CreateSession(t, db, group.ID, activity.ID, time.Date(2025, 5, 9, 18, 35, 0, 0, time.UTC))
	testhelper.CreateSession(t, db, group.ID, activity.ID, time.Date(2025, 5, 9, 18, 20, 0, 0, time.UTC))

	stats, err := repo.QuickStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.StudyStreakDays)
}

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		correct, total int64
		want           float64
	}{
		{0, 0, 0},
		{2, 3, 66.7},
		{1, 3, 33.3},
		{3, 3, 100},
		{1, 8, 12.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SuccessRate(tt.correct, tt.total), "%d/%d", tt.correct, tt.total)
	}
}

func TestStreak(t *testing.T) {
	now := time.Date(2025, 5, 10, 1, 0, 0, 0, time.UTC)
	day := func(offset int, hour int) time.Time {
		return time.Date(2025, 5, 10+offset, hour, 0, 0, 0, time.UTC)
	}

	t.Run("no sessions", func(t *testing.T) {
		assert.Equal(t, 0, Streak(nil, now, time.UTC))
	})

	t.Run("nothing today", func(t *testing.T) {
		assert.Equal(t, 0, Streak([]time.Time{day(-1, 10), day(-2, 10)}, now, time.UTC))
	})

	t.Run("stops at first gap", func(t *testing.T) {
		times := []time.Time{day(0, 0), day(0, 0), day(-1, 23), day(-2, 5), day(-4, 5)}
		assert.Equal(t, 3, Streak(times, now, time.UTC))
	})

	t.Run("buckets in configured zone", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*3600)
		// 20:00 UTC on the 9th is already the 10th in Tokyo.
		times := []time.Time{day(-1, 20)}
		assert.Equal(t, 0, Streak(times, now, time.UTC))
		assert.Equal(t, 1, Streak(times, now, tokyo))
	})
}
