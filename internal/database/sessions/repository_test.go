package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/langportal/internal/database"
	"github.com/mrlokans/langportal/internal/database/testhelper"
	"github.com/mrlokans/langportal/internal/entities"
	"github.com/mrlokans/langportal/internal/pagination"
)

type fixture struct {
	db       *database.Database
	repo     *Repository
	group    *entities.Group
	activity *entities.StudyActivity
}

func setupFixture(t *testing.T, opts ...Option) fixture {
	db := testhelper.NewTestDB(t)
	return fixture{
		db:       db,
		repo:     NewRepository(db.DB, opts...),
		group:    testhelper.CreateGroup(t, db, "Basic Greetings"),
		activity: testhelper.CreateActivity(t, db, "Vocabulary Quiz"),
	}
}

func TestRepository_Create(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 9, 30, 0, 0, time.FixedZone("JST", 9*3600))
	f := setupFixture(t, WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	session, err := f.repo.Create(ctx, f.group.ID, f.activity.ID)
	require.NoError(t, err)
	assert.NotZero(t, session.ID)
	assert.True(t, session.CreatedAt.Equal(fixed))
	assert.Equal(t, time.UTC, session.CreatedAt.Location())
}

func TestRepository_Create_Errors(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.repo.Create(ctx, 0, f.activity.ID)
	assert.ErrorIs(t, err, entities.ErrValidation)

	_, err = f.repo.Create(ctx, 9999, f.activity.ID)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	_, err = f.repo.Create(ctx, f.group.ID, 9999)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	assert.Zero(t, testhelper.Count(t, f.db, "study_sessions"))
}

func TestRepository_GetByID_Annotated(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	word := testhelper.CreateWord(t, f.db, "こんにちは", "konnichiwa", "hello")
	session := testhelper.CreateSession(t, f.db, f.group.ID, f.activity.ID, time.Now())
	testhelper.CreateReview(t, f.db, word.ID, session.ID, true)
	testhelper.CreateReview(t, f.db, word.ID, session.ID, false)

	got, err := f.repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Basic Greetings", got.GroupName)
	assert.Equal(t, "Vocabulary Quiz", got.ActivityName)
	assert.Equal(t, int64(2), got.ReviewItemsCount)
	assert.Equal(t, int64(1), got.CorrectCount)

	_, err = f.repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_List_Ordering(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	older := testhelper.CreateSession(t, f.db, f.group.ID, f.activity.ID, base)
	tieA := testhelper.CreateSession(t, f.db, f.group.ID, f.activity.ID, base.Add(time.Hour))
	tieB := testhelper.CreateSession(t, f.db, f.group.ID, f.activity.ID, base.Add(time.Hour))

	items, total, err := f.repo.List(ctx, pagination.NewRequest(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 3)
	assert.Equal(t, []uint{tieA.ID, tieB.ID, older.ID}, []uint{items[0].ID, items[1].ID, items[2].ID})

	items, _, err = f.repo.List(ctx, pagination.NewRequest(2, 2))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, older.ID, items[0].ID)
}

func TestRepository_ListForGroupAndActivity(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	other := testhelper.CreateGroup(t, f.db, "Other")
	otherActivity := testhelper.CreateActivity(t, f.db, "Writing")
	testhelper.CreateSession(t, f.db, f.group.ID, f.activity.ID, time.Now())
	testhelper.CreateSession(t, f.db, other.ID, otherActivity.ID, time.Now())

	items, total, err := f.repo.ListForGroup(ctx, f.group.ID, pagination.NewRequest(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, f.group.ID, items[0].GroupID)

	items, total, err = f.repo.ListForActivity(ctx, otherActivity.ID, pagination.NewRequest(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Writing", items[0].ActivityName)

	_, _, err = f.repo.ListForGroup(ctx, 9999, pagination.NewRequest(1, 10))
	assert.ErrorIs(t, err, entities.ErrNotFound)
	_, _, err = f.repo.ListForActivity(ctx, 9999, pagination.NewRequest(1, 10))
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_ReviewedWords(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	hello := testhelper.CreateWord(t, f.db, "こんにちは", "konnichiwa", "hello")
	bye := testhelper.CreateWord(t, f.db, "さようなら", "sayounara", "goodbye")
	testhelper.CreateWord(t, f.db, "ありがとう", "arigatou", "thank you")

	session := testhelper.CreateSession(t, f.db, f.group.ID, f.activity.ID, time.Now())
	another := testhelper.CreateSession(t, f.db, f.group.ID, f.activity.ID, time.Now())
	testhelper.CreateReview(t, f.db, hello.ID, session.ID, true)
	testhelper.CreateReview(t, f.db, hello.ID, session.ID, true)
	testhelper.CreateReview(t, f.db, bye.ID, session.ID, false)
	testhelper.CreateReview(t, f.db, hello.ID, another.ID, false)

	items, total, err := f.repo.ReviewedWords(ctx, session.ID, pagination.NewRequest(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, hello.ID, items[0].ID)
	assert.Equal(t, int64(2), items[0].CorrectCount)
	assert.Zero(t, items[0].WrongCount)
	assert.Equal(t, int64(1), items[1].WrongCount)

	_, _, err = f.repo.ReviewedWords(ctx, 9999, pagination.NewRequest(1, 10))
	assert.ErrorIs(t, err, entities.ErrNotFound)
}
