// Package audit stores the audit trail of destructive and bulk operations.
package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/langportal/internal/database"
	"github.com/mrlokans/langportal/internal/entities"
	"github.com/mrlokans/langportal/internal/pagination"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return database.MapError(r.db.WithContext(ctx).Create(event).Error, "audit event", 0)
}

// GetEvents retrieves a page of audit events, most recent first. An empty
// eventType matches every event.
func (r *Repository) GetEvents(ctx context.Context, eventType entities.AuditEventType, req pagination.Request) ([]entities.AuditEvent, int64, error) {
	var events []entities.AuditEvent
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.AuditEvent{})
	if eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.MapError(err, "audit events", 0)
	}

	err := query.Order("created_at DESC").Order("id DESC").Limit(req.Limit()).Offset(req.Offset()).Find(&events).Error
	if err != nil {
		return nil, 0, database.MapError(err, "audit events", 0)
	}
	return events, total, nil
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", olderThan.UTC()).Delete(&entities.AuditEvent{})
	return result.RowsAffected, database.MapError(result.Error, "audit events", 0)
}
