package monitor

import (
	"fmt"
	"strings"

	"github.com/lysyi3m/tweetwatch/app/timeline"
)

// itemTextLimit caps each item's cleaned text inside the digest so one
// long post cannot crowd out the rest of the batch.
const itemTextLimit = 280

// DigestBuilder combines a cycle's new items into one outbound message,
// bounding notification-channel calls to at most one per cycle.
type DigestBuilder struct {
	account string
	cleaner *timeline.Cleaner
}

func NewDigestBuilder(account string) *DigestBuilder {
	return &DigestBuilder{
		account: strings.TrimPrefix(account, "@"),
		cleaner: timeline.NewCleaner(),
	}
}

// Run builds the digest. Items arrive in detection order (most recent
// first) and are rendered oldest first, so the message reads
// chronologically.
func (d *DigestBuilder) Run(items []timeline.Item) string {
	parts := []string{fmt.Sprintf("New tweets from @%s:", d.account)}

	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]

		text := d.cleaner.Run(item.Text)
		if runes := []rune(text); len(runes) > itemTextLimit {
			text = string(runes[:itemTextLimit]) + "..."
		}

		stamp := "unknown"
		if item.CreatedAt != nil {
			stamp = item.CreatedAt.Format("2006-01-02 15:04:05")
		}

		entry := fmt.Sprintf("\n[%s]\n%s", stamp, text)
		if item.URL != "" {
			entry += "\n" + item.URL
		}

		parts = append(parts, entry)
	}

	return strings.Join(parts, "\n")
}
