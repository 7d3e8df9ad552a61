package service

import (
	"context"

	"github.com/Skotchmaster/online_pharmacy/pkg/events"
	"github.com/Skotchmaster/online_pharmacy/pkg/logging"
)

// publish sends event after the write it describes has committed. Failures are
// logged and never reach the caller.
func publish(ctx context.Context, pub events.Publisher, topic, key string, event any) {
	if pub == nil {
		return
	}
	if err := pub.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", topic, "key", key, "error", err)
	}
}
