package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Audit
		Global
		Database
		Pagination
		Dashboard
		Tasks
		Admin
		Analyzer
	}

	HTTP struct {
		Port               int32
		Host               string
		CORSAllowedOrigins []string
		MaxImportBodyBytes int64 // upper bound for vocabulary import bodies
	}
	Audit struct {
		RetentionDays   int    // Days to keep audit events (default: 30)
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // silent, error, warn or info
	}
	Pagination struct {
		DefaultPageSize int
	}
	Dashboard struct {
		StreakTimezone string // IANA zone used to bucket study days
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration // stuck tasks go back to the queue after this
		CleanupInterval time.Duration
	}
	Admin struct {
		TokenHash  string // bcrypt hash; empty leaves reset endpoints open
		BcryptCost int

		MaxFailedAttempts int           // failures before lockout (default: 5)
		RateLimitWindow   time.Duration // counting window (default: 15m)
		LockoutDuration   time.Duration // lockout length (default: 30m)
	}
	Analyzer struct {
		Enabled bool
	}
)

// LoadDotEnv reads a .env file into the process environment when present.
// Variables already set in the environment win.
func LoadDotEnv(paths ...string) {
	if err := godotenv.Load(paths...); err != nil {
		log.Printf("No .env file loaded, using process environment: %v", err)
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("cors_allowed_origins", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("max_import_body_bytes", DefaultMaxImportBodyBytes)
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("gorm_log_level", "warn")
	v.SetDefault("default_page_size", 100)
	v.SetDefault("streak_timezone", "UTC")
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", DefaultAuditCleanupSchedule)
	v.SetDefault("analyzer_enabled", true)

	// Admin guard defaults
	v.SetDefault("admin_token_hash", "")
	v.SetDefault("admin_bcrypt_cost", 12)
	v.SetDefault("admin_max_failed_attempts", 5)
	v.SetDefault("admin_rate_limit_window", "15m")
	v.SetDefault("admin_lockout_duration", "30m")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port:               v.GetInt32("PORT"),
			Host:               v.GetString("HOST"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			MaxImportBodyBytes: v.GetInt64("MAX_IMPORT_BODY_BYTES"),
		},
		Audit: Audit{
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("GORM_LOG_LEVEL"),
		},
		Pagination: Pagination{
			DefaultPageSize: v.GetInt("DEFAULT_PAGE_SIZE"),
		},
		Dashboard: Dashboard{
			StreakTimezone: v.GetString("STREAK_TIMEZONE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Admin: Admin{
			TokenHash:         v.GetString("ADMIN_TOKEN_HASH"),
			BcryptCost:        v.GetInt("ADMIN_BCRYPT_COST"),
			MaxFailedAttempts: v.GetInt("ADMIN_MAX_FAILED_ATTEMPTS"),
			RateLimitWindow:   v.GetDuration("ADMIN_RATE_LIMIT_WINDOW"),
			LockoutDuration:   v.GetDuration("ADMIN_LOCKOUT_DURATION"),
		},
		Analyzer: Analyzer{
			Enabled: v.GetBool("ANALYZER_ENABLED"),
		},
	}
}

// StreakLocation resolves the configured streak timezone.
func (c *Config) StreakLocation() (*time.Location, error) {
	name := strings.TrimSpace(c.Dashboard.StreakTimezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid STREAK_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
