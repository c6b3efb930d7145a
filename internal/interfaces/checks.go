package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/langportal/internal/analyzer"
	"github.com/mrlokans/langportal/internal/audit"
	"github.com/mrlokans/langportal/internal/database"
	"github.com/mrlokans/langportal/internal/database/activities"
	"github.com/mrlokans/langportal/internal/database/dashboard"
	"github.com/mrlokans/langportal/internal/database/groups"
	"github.com/mrlokans/langportal/internal/database/reset"
	"github.com/mrlokans/langportal/internal/database/reviews"
	"github.com/mrlokans/langportal/internal/database/sessions"
	"github.com/mrlokans/langportal/internal/database/words"
	"github.com/mrlokans/langportal/internal/http"
	"github.com/mrlokans/langportal/internal/importers"
	"github.com/mrlokans/langportal/internal/scheduler"
	"github.com/mrlokans/langportal/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.WordStore = (*words.Repository)(nil)
var _ http.GroupStore = (*groups.Repository)(nil)
var _ http.SessionStore = (*sessions.Repository)(nil)
var _ http.ActivityStore = (*activities.Repository)(nil)
var _ http.ReviewStore = (*reviews.Repository)(nil)
var _ http.DashboardStore = (*dashboard.Repository)(nil)
var _ http.ResetStore = (*reset.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)

// Importer dependencies
var _ importers.GroupResolver = (*groups.Repository)(nil)
var _ importers.WordBatchCreator = (*words.Repository)(nil)

// =============================================================================
// Services
// =============================================================================

var _ http.AuditLog = (*audit.Service)(nil)
var _ importers.ImportRecorder = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

var _ http.WordAnalyzer = (*analyzer.Analyzer)(nil)
var _ importers.PartsFiller = (*analyzer.Analyzer)(nil)

var _ http.GroupImporter = (*importers.VocabularyImporter)(nil)
var _ tasks.GroupWordImporter = (*importers.VocabularyImporter)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.TaskEnqueuer = (*tasks.Client)(nil)
