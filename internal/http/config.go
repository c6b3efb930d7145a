package http

import (
	"github.com/gin-gonic/gin"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Stores
	Words      WordStore
	Groups     GroupStore
	Sessions   SessionStore
	Activities ActivityStore
	Reviews    ReviewStore
	Dashboard  DashboardStore
	Reset      ResetStore

	// Health check target
	Database Pinger

	// Audit trail; nil disables audit recording and the events endpoint.
	AuditLog AuditLog

	// Word analysis; nil leaves the analysis route unregistered.
	Analyzer WordAnalyzer

	// Background tasks. Without a queue, imports run inline through Importer.
	TaskQueue TaskQueue
	Importer  GroupImporter

	// MaxImportBytes bounds import request bodies; 0 uses DefaultMaxImportBytes.
	MaxImportBytes int64

	// AdminGuard protects the reset endpoints when set.
	AdminGuard gin.HandlerFunc

	// DefaultPageSize applies when a request has no per_page.
	DefaultPageSize int

	// Application info
	Version string
}
