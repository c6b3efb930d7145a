// Package interfaces documents the core abstractions used throughout the application.
//
// Interfaces are declared where they are consumed. This package only holds
// the compile-time checks that tie each interface to its implementation.
//
// # Interface Categories
//
// ## Data Access Interfaces (internal/http/stores.go)
//
//   - WordStore, GroupStore, SessionStore, ActivityStore, ReviewStore:
//     query and mutation operations, implemented by the repositories under
//     internal/database
//   - DashboardStore: last session, study progress and quick stats
//   - ResetStore: reset history and full reset
//   - Pinger: database connectivity for the health check
//
// ## Import Interfaces (internal/importers/vocabulary.go)
//
//   - GroupResolver: find or create a group by name
//   - WordBatchCreator: create words inside a group in one transaction
//   - PartsFiller: derive a parts document from a word's kanji
//   - ImportRecorder: record the outcome of an import
//
// ## Background Work Interfaces
//
//   - TaskQueue (internal/http) and TaskEnqueuer (internal/scheduler):
//     implemented by tasks.Client
//   - GroupWordImporter, AuditEventCleaner (internal/tasks): the work done
//     by the import_group_words and cleanup_audit_events queues
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Take a context.Context on every method and scope queries with
//     db.WithContext(ctx); classify errors with database.MapError
//
//  4. Declare the consumer interface in internal/http/stores.go and add a
//     compile-time check to checks.go:
//
//     var _ http.SomeStore = (*somedomain.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
