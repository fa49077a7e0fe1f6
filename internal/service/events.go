package service

import (
	"context"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// publishEvent delivers the event if a publisher is configured. Delivery is
// best effort: failures are logged and never fail the calling operation.
func publishEvent(ctx context.Context, publisher model.EventPublisher, log *logger.Logger, event model.Event) {
	if publisher == nil {
		return
	}

	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn("Event publisher: failed to publish event",
			"type", event.Type,
			"error", err.Error())
	}
}
