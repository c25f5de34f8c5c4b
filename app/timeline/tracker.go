package timeline

import (
	"fmt"
	"strconv"
)

// MalformedIDError reports that the newest item's ID does not parse as the
// expected numeric scheme. The cycle should be skipped and retried with
// fresh data; the watermark must not move.
type MalformedIDError struct {
	ID string
}

func (e *MalformedIDError) Error() string {
	return fmt.Sprintf("malformed item ID: %q is not numeric", e.ID)
}

// Tracker is the change-detection state machine. It owns no I/O: the
// persisted watermark is passed in and the updated value handed back, so
// reading and writing storage stays at the calling boundary. It is also
// source- and channel-agnostic; it never learns which variant produced
// the batch or where notifications go.
type Tracker struct{}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Run computes the subset of items newer than the watermark. Items must
// arrive sorted most recent first (the Normalizer's contract). Returns the
// new items in that same order and the watermark to persist.
//
// An empty watermark means no prior state: the newest ID is recorded and
// nothing is reported as new, which suppresses a notification storm on
// first deployment. A watermark that fails to parse is treated the same
// way, re-baselining from the current batch.
func (t *Tracker) Run(items []Item, watermark string) ([]Item, string, error) {
	if len(items) == 0 {
		return nil, watermark, nil
	}

	newest := items[0]
	newestID, err := strconv.ParseInt(newest.ID, 10, 64)
	if err != nil {
		return nil, watermark, &MalformedIDError{ID: newest.ID}
	}

	if watermark == "" {
		return nil, newest.ID, nil
	}

	lastSeenID, err := strconv.ParseInt(watermark, 10, 64)
	if err != nil {
		return nil, newest.ID, nil
	}

	if lastSeenID >= newestID {
		return nil, watermark, nil
	}

	// Early-exit prefix scan: items are contiguous-descending, so the
	// first ID at or below the watermark ends the batch. Items with
	// unparsable IDs below the newest also end it rather than leak in.
	var newItems []Item
	for _, item := range items {
		id, err := strconv.ParseInt(item.ID, 10, 64)
		if err != nil || id <= lastSeenID {
			break
		}
		newItems = append(newItems, item)
	}

	return newItems, newest.ID, nil
}
