package ports

import (
	"context"

	"github.com/eventdesk/event-management-api/internal/core/domain"
)

// AuditRecorder accepts audit entries for asynchronous persistence. Record
// must not block the calling request; entries may be dropped when the
// recorder is saturated.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
