package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(DefaultPort), cfg.HTTP.Port)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, 100, cfg.Pagination.DefaultPageSize)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.Equal(t, DefaultAuditCleanupSchedule, cfg.Audit.CleanupSchedule)
	assert.Equal(t, 15*time.Minute, cfg.Admin.RateLimitWindow)
	assert.Empty(t, cfg.Admin.TokenHash)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, int64(DefaultMaxImportBodyBytes), cfg.HTTP.MaxImportBodyBytes)
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_PATH", "/tmp/portal.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("TASK_RELEASE_AFTER", "90s")
	t.Setenv("STREAK_TIMEZONE", "Asia/Tokyo")
	t.Setenv("MAX_IMPORT_BODY_BYTES", "2048")

	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/portal.db", cfg.Database.Path)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, 90*time.Second, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, int64(2048), cfg.HTTP.MaxImportBodyBytes)

	loc, err := cfg.StreakLocation()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())
}

func TestStreakLocation_Invalid(t *testing.T) {
	cfg := &Config{Dashboard: Dashboard{StreakTimezone: "Mars/Olympus"}}

	_, err := cfg.StreakLocation()
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LANGPORTAL_TEST_KEY=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LANGPORTAL_TEST_KEY") })

	LoadDotEnv(path)

	assert.Equal(t, "from-dotenv", os.Getenv("LANGPORTAL_TEST_KEY"))
}
