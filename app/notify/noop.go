package notify

import (
	"context"
	"log/slog"
)

var _ Notifier = (*NoopNotifier)(nil)

// NoopNotifier logs the digest instead of delivering it. The watermark
// still advances, so switching a running deployment from 'none' to a real
// channel never replays old items.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

func (n *NoopNotifier) Send(ctx context.Context, message string) error {
	slog.Info("Notification skipped (channel: none)", "message_length", len(message))
	return nil
}
