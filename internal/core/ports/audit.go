package ports

import (
	"context"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
)

// AuditRecorder accepts audit records for asynchronous persistence. Record
// must not block the request path beyond enqueueing.
type AuditRecorder interface {
	Record(ctx context.Context, rec domain.AuditRecord)
}

// AuditSink persists a single audit record. Implementations decide durability;
// the dispatcher logs and drops records a sink rejects.
type AuditSink interface {
	Write(ctx context.Context, rec domain.AuditRecord) error
}
