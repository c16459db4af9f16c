package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
)

// LogSink emits audit records as structured log events. It serves as the
// dispatcher's fallback: records the durable sink rejects still leave a
// trace in the log stream instead of vanishing.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Write(_ context.Context, rec domain.AuditRecord) error {
	s.log.Info().
		Str("user_id", rec.UserID).
		Str("action", rec.Action).
		Str("resource", rec.Resource).
		Str("resource_id", rec.ResourceID).
		Str("method", rec.Method).
		Str("path", rec.Path).
		Str("ip", rec.IP).
		Bool("success", rec.Success).
		Time("at", rec.Timestamp).
		Msg("audit")
	return nil
}
