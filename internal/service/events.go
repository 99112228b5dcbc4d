package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/events"
)

// publish emits an event when a dispatcher is configured. Handler failures
// never fail the calling operation.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("publish event", zap.String("event", string(event.Type)), zap.Error(err))
	}
}
