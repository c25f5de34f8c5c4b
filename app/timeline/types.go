package timeline

import (
	"time"
)

// Timeline processing types

// RawItem is a single entry as delivered by a source, before any
// normalization. Fields may be empty or malformed; scraped sources in
// particular can only promise the display text.
type RawItem struct {
	Text      string
	NativeID  string
	Permalink string
	Author    string     // declared author handle, empty when the source cannot attribute
	CreatedAt *time.Time // trusted source timestamp, nil when unavailable
}

// Item is a normalized timeline entry. ID is the sole identity and
// ordering key: two items with equal ID are the same logical item no
// matter what the surrounding text says.
type Item struct {
	ID        string
	Text      string
	CreatedAt *time.Time // nil = unknown (ID absent or non-numeric)
	URL       string

	IsMuted    bool
	MuteReason string
}

// Watch configuration types

type Watch struct {
	Account  string        `yaml:"account"`
	Settings WatchSettings `yaml:"settings"`
	Filters  []WatchFilter `yaml:"filters"`
}

type WatchSettings struct {
	MaxItems     int `yaml:"max_items"`
	PollInterval int `yaml:"poll_interval"` // seconds
	Timeout      int `yaml:"timeout"`       // seconds, per fetch
}

type WatchFilter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}
