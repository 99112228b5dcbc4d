package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/events"
)

// StartAuditWorker subscribes a structured audit log to every account and
// login event.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	audit := logger.Named("audit")
	for _, eventType := range events.AllTypes {
		dispatcher.Subscribe(eventType, auditHandler(audit))
	}
}

func auditHandler(logger *zap.Logger) events.EventHandler {
	return func(_ context.Context, event events.Event) error {
		fields := []zap.Field{
			zap.String("event_id", event.ID),
			zap.String("event", string(event.Type)),
			zap.Time("at", event.Timestamp),
		}
		if event.UserID != 0 {
			fields = append(fields, zap.Int64("user_id", event.UserID))
		}
		if event.Username != "" {
			fields = append(fields, zap.String("username", event.Username))
		}
		if event.Type == events.EventLoginRejected {
			logger.Warn("audit event", fields...)
			return nil
		}
		logger.Info("audit event", fields...)
		return nil
	}
}
