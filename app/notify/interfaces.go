// Package notify delivers the per-cycle digest to the configured channel.
// Delivery is fire-and-forget: a failed send is logged by the caller and
// never retried within the cycle, because the watermark has already
// advanced and a retry on the next cycle would duplicate the batch.
package notify

import (
	"context"
)

// Notifier sends one outbound message.
type Notifier interface {
	Send(ctx context.Context, message string) error
}
