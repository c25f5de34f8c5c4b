package source

import (
	"context"
	"fmt"
	"time"

	"github.com/lysyi3m/tweetwatch/app/timeline"
)

var _ Source = (*MockSource)(nil)

// MockSource returns canned items without touching the network. Useful
// for dry runs of the notification pipeline and for tests.
type MockSource struct {
	// Items overrides the generated batch when non-nil.
	Items []timeline.RawItem

	// Err makes every Fetch fail, simulating an unavailable source.
	Err error
}

func NewMockSource() *MockSource {
	return &MockSource{}
}

func (s *MockSource) Fetch(ctx context.Context, account string) ([]timeline.RawItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Items != nil {
		return s.Items, nil
	}

	// Generate a couple of fake items with valid snowflake-style IDs so
	// the full pipeline, including timestamp derivation, is exercised.
	now := time.Now().UnixMilli()
	items := make([]timeline.RawItem, 0, 3)
	for i := 0; i < 3; i++ {
		ms := now - int64(i)*60_000
		id := (ms - 1288834974657) << 22

		items = append(items, timeline.RawItem{
			Text:      fmt.Sprintf("Simulated post #%d from the mock source", i+1),
			NativeID:  fmt.Sprintf("%d", id),
			Permalink: fmt.Sprintf("https://x.com/%s/status/%d", account, id),
			Author:    account,
		})
	}

	return items, nil
}

func (s *MockSource) Close() error {
	return nil
}
