package timeline

import (
	"sort"
	"strings"
)

const DefaultMaxItems = 20

// Normalizer converts raw source items into a uniform, ordered batch.
// It is a pure transformation: same input, same output, no side effects.
type Normalizer struct {
	maxItems int
}

func NewNormalizer(maxItems int) *Normalizer {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &Normalizer{maxItems: maxItems}
}

// Run filters raw items down to those attributable to account,
// deduplicates them by ID (first occurrence wins), derives creation times,
// and returns the batch sorted most recent first. Items with an unknown
// creation time sort last, keeping their discovery order. Output is capped
// to maxItems, discarding the oldest overflow.
func (n *Normalizer) Run(raw []RawItem, account string) []Item {
	items := make([]Item, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for _, r := range raw {
		if !n.isFromAccount(r, account) {
			continue
		}

		if seen[r.NativeID] {
			continue
		}
		seen[r.NativeID] = true

		item := Item{
			ID:   r.NativeID,
			Text: r.Text,
			URL:  r.Permalink,
		}

		if r.CreatedAt != nil {
			item.CreatedAt = r.CreatedAt
		} else {
			item.CreatedAt = TimeFromID(r.NativeID)
		}

		items = append(items, item)
	}

	// Most recent first; unknown timestamps after all known ones, ties
	// broken by discovery order (stable sort).
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].CreatedAt, items[j].CreatedAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})

	if len(items) > n.maxItems {
		items = items[:n.maxItems]
	}

	return items
}

// isFromAccount checks whether a raw item belongs to the watched account.
// Structured sources declare the author explicitly; scraped items carry no
// author field, so the first few lines of the display text are inspected
// for the handle instead (replies from other authors appear in the same
// scraped feed).
func (n *Normalizer) isFromAccount(r RawItem, account string) bool {
	handle := strings.TrimPrefix(strings.ToLower(account), "@")

	if r.Author != "" {
		author := strings.TrimPrefix(strings.ToLower(r.Author), "@")
		return author == handle
	}

	lines := strings.Split(r.Text, "\n")
	if len(lines) > 3 {
		lines = lines[:3]
	}
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), handle) {
			return true
		}
	}

	return false
}
