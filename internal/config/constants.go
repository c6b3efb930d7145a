package config

const (
	// DefaultDatabasePath is the default path for the portal database
	DefaultDatabasePath = "./words.db"

	// DefaultPort matches the port the frontend expects
	DefaultPort = 5000

	// DefaultAuditCleanupSchedule runs retention cleanup daily at 03:00
	DefaultAuditCleanupSchedule = "0 3 * * *"

	// DefaultMaxImportBodyBytes bounds vocabulary import requests (1 MiB)
	DefaultMaxImportBodyBytes = 1 << 20
)
