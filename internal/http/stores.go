package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/langportal/internal/analyzer"
	"github.com/mrlokans/langportal/internal/database/activities"
	"github.com/mrlokans/langportal/internal/database/groups"
	"github.com/mrlokans/langportal/internal/database/reviews"
	"github.com/mrlokans/langportal/internal/database/words"
	"github.com/mrlokans/langportal/internal/entities"
	"github.com/mrlokans/langportal/internal/importers"
	"github.com/mrlokans/langportal/internal/pagination"
)

// This file consolidates the store interfaces used by HTTP controllers.
// Each controller depends only on the methods it calls; the repositories
// under internal/database satisfy them (see internal/interfaces/checks.go).

// WordStore is implemented by words.Repository.
type WordStore interface {
	List(ctx context.Context, req pagination.Request, sort words.Sort) ([]entities.WordSummary, int64, error)
	ListByGroup(ctx context.Context, groupID uint, req pagination.Request, sort words.Sort) ([]entities.WordSummary, int64, error)
	GetByID(ctx context.Context, id uint) (*entities.WordDetail, error)
	Create(ctx context.Context, in words.CreateInput) (*entities.Word, error)
	Update(ctx context.Context, id uint, in words.UpdateInput) (*entities.Word, error)
	Delete(ctx context.Context, id uint) error
}

// GroupStore is implemented by groups.Repository.
type GroupStore interface {
	List(ctx context.Context, req pagination.Request, sort groups.Sort) ([]entities.GroupSummary, int64, error)
	GetByID(ctx context.Context, id uint) (*entities.GroupDetail, error)
	Create(ctx context.Context, name string) (*entities.Group, error)
	Update(ctx context.Context, id uint, name *string) (*entities.Group, error)
	Delete(ctx context.Context, id uint) error
	AddWord(ctx context.Context, groupID, wordID uint) error
	RemoveWord(ctx context.Context, groupID, wordID uint) error
}

// SessionStore is implemented by sessions.Repository.
type SessionStore interface {
	List(ctx context.Context, req pagination.Request) ([]entities.StudySessionSummary, int64, error)
	ListForGroup(ctx context.Context, groupID uint, req pagination.Request) ([]entities.StudySessionSummary, int64, error)
	ListForActivity(ctx context.Context, activityID uint, req pagination.Request) ([]entities.StudySessionSummary, int64, error)
	GetByID(ctx context.Context, id uint) (*entities.StudySessionSummary, error)
	Create(ctx context.Context, groupID, activityID uint) (*entities.StudySession, error)
	ReviewedWords(ctx context.Context, sessionID uint, req pagination.Request) ([]entities.WordSummary, int64, error)
}

// ActivityStore is implemented by activities.Repository.
type ActivityStore interface {
	List(ctx context.Context, req pagination.Request) ([]entities.StudyActivitySummary, int64, error)
	GetByID(ctx context.Context, id uint) (*entities.StudyActivitySummary, error)
	Create(ctx context.Context, in activities.CreateInput) (*entities.StudyActivity, error)
	Update(ctx context.Context, id uint, in activities.UpdateInput) (*entities.StudyActivity, error)
	Delete(ctx context.Context, id uint) error
}

// ReviewStore is implemented by reviews.Repository.
type ReviewStore interface {
	List(ctx context.Context, req pagination.Request) ([]entities.WordReviewItem, int64, error)
	GetByID(ctx context.Context, id uint) (*entities.WordReviewItem, error)
	Create(ctx context.Context, in reviews.CreateInput) (*entities.WordReviewItem, error)
	Delete(ctx context.Context, id uint) error
}

// DashboardStore is implemented by dashboard.Repository.
type DashboardStore interface {
	LastSession(ctx context.Context) (*entities.LastStudySession, error)
	StudyProgress(ctx context.Context) (*entities.StudyProgress, error)
	QuickStats(ctx context.Context) (*entities.QuickStats, error)
}

// ResetStore is implemented by reset.Repository.
type ResetStore interface {
	ResetHistory(ctx context.Context) (*entities.ResetResult, error)
	FullReset(ctx context.Context) (*entities.ResetResult, error)
}

// AuditLog is implemented by audit.Service.
type AuditLog interface {
	LogReset(action, ipAddr string, result *entities.ResetResult, err error)
	LogDelete(entityType string, entityID uint, entityName, ipAddr string)
	GetEvents(ctx context.Context, eventType entities.AuditEventType, req pagination.Request) ([]entities.AuditEvent, int64, error)
}

// WordAnalyzer is implemented by analyzer.Analyzer.
type WordAnalyzer interface {
	Analyze(text string) []analyzer.Token
}

// TaskQueue is implemented by tasks.Client.
type TaskQueue interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// GroupImporter runs a vocabulary import inline when no task queue is
// configured. Implemented by importers.VocabularyImporter.
type GroupImporter interface {
	Import(ctx context.Context, groupID uint, items []importers.VocabItem) (*importers.Result, error)
}

// Pinger checks database connectivity. Implemented by database.Database.
type Pinger interface {
	Ping(ctx context.Context) error
}
