// Package source provides the raw-item acquisition variants. Every
// variant yields the same opaque RawItem batch; attribution, ordering,
// and change detection all happen downstream in the timeline package.
package source

import (
	"context"

	"github.com/lysyi3m/tweetwatch/app/timeline"
)

// Source fetches the most recent raw items for an account. A fetch error
// is transient from the caller's point of view: the cycle treats it as an
// empty batch and retries from scratch next time.
type Source interface {
	Fetch(ctx context.Context, account string) ([]timeline.RawItem, error)
	Close() error
}
