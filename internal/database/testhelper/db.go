// Package testhelper opens migrated throwaway databases and seeds fixtures
// for repository and controller tests.
package testhelper

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/langportal/internal/database"
	"github.com/mrlokans/langportal/internal/entities"
)

// NewTestDB opens a fresh migrated database in the test's temp dir. The
// connection is closed when the test ends.
func NewTestDB(t *testing.T) *database.Database {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.NewDatabase(dbPath, database.WithLogLevel(logger.Silent))
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// CreateWord inserts a word with the given term and gloss.
func CreateWord(t *testing.T, db *database.Database, kanji, romaji, english string) *entities.Word {
	t.Helper()
	w := &entities.Word{Kanji: kanji, Romaji: romaji, English: english}
	require.NoError(t, db.DB.Omit(clause.Associations).Create(w).Error)
	return w
}

// CreateGroup inserts a group.
func CreateGroup(t *testing.T, db *database.Database, name string) *entities.Group {
	t.Helper()
	g := &entities.Group{Name: name}
	require.NoError(t, db.DB.Omit(clause.Associations).Create(g).Error)
	return g
}

// AddToGroup links a word to a group.
func AddToGroup(t *testing.T, db *database.Database, wordID, groupID uint) {
	t.Helper()
	require.NoError(t, db.DB.Create(&entities.WordGroup{WordID: wordID, GroupID: groupID}).Error)
}

// CreateActivity inserts a study activity.
func CreateActivity(t *testing.T, db *database.Database, name string) *entities.StudyActivity {
	t.Helper()
	a := &entities.StudyActivity{Name: name}
	require.NoError(t, db.DB.Create(a).Error)
	return a
}

// CreateSession inserts a session with an explicit creation time.
func CreateSession(t *testing.T, db *database.Database, groupID, activityID uint, at time.Time) *entities.StudySession {
	t.Helper()
	s := &entities.StudySession{GroupID: groupID, StudyActivityID: activityID, CreatedAt: at.UTC()}
	require.NoError(t, db.DB.Omit(clause.Associations).Create(s).Error)
	return s
}

// CreateReview records an answer for a word in a session.
func CreateReview(t *testing.T, db *database.Database, wordID, sessionID uint, correct bool) *entities.WordReviewItem {
	t.Helper()
	r := &entities.WordReviewItem{WordID: wordID, StudySessionID: sessionID, Correct: correct, CreatedAt: time.Now().UTC()}
	require.NoError(t, db.DB.Create(r).Error)
	return r
}

// Count returns the number of rows in table.
func Count(t *testing.T, db *database.Database, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.DB.Table(table).Count(&n).Error)
	return n
}
