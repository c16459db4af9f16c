package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
)

const auditCollection = "audit_logs"

// MongoAuditSink persists audit records durably instead of writing them to
// the console. Records are inserted as-is; the collection is append-only from
// the application's perspective.
type MongoAuditSink struct {
	coll *mongo.Collection
}

func NewAuditSink(db *mongo.Database) *MongoAuditSink {
	return &MongoAuditSink{coll: db.Collection(auditCollection)}
}

func (s *MongoAuditSink) Write(ctx context.Context, rec domain.AuditRecord) error {
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}
