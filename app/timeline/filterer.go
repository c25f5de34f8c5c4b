package timeline

import (
	"fmt"
	"strings"
)

// Filterer applies the watch file's include/exclude rules to normalized
// items. Muted items are still tracked (they advance the watermark like
// any other item) but are skipped when the notification digest is built.
type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

func (f *Filterer) Run(items []Item, filters []WatchFilter) []Item {
	if len(filters) == 0 {
		return items
	}

	result := make([]Item, 0, len(items))
	for _, item := range items {
		isMuted, muteReason := f.applyFilters(item, filters)
		item.IsMuted = isMuted
		item.MuteReason = muteReason
		result = append(result, item)
	}

	return result
}

func (f *Filterer) applyFilters(item Item, filters []WatchFilter) (bool, string) {
	for _, filter := range filters {
		value := f.getFieldValue(item, filter.Field)

		for _, exclude := range filter.Excludes {
			if f.matchesFilter(value, exclude) {
				return true, fmt.Sprintf("Muted by %s filter: contains '%s'", filter.Field, exclude)
			}
		}

		if len(filter.Includes) > 0 {
			matched := false
			for _, include := range filter.Includes {
				if f.matchesFilter(value, include) {
					matched = true
					break
				}
			}
			if !matched {
				return true, fmt.Sprintf("Muted by %s filter: does not contain any of %v", filter.Field, filter.Includes)
			}
		}
	}

	return false, ""
}

func (f *Filterer) matchesFilter(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

func (f *Filterer) getFieldValue(item Item, field string) string {
	switch field {
	case "text":
		return item.Text
	case "url":
		return item.URL
	default:
		return ""
	}
}
