package timeline

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Cleaner strips source-specific decoration from scraped item text:
// author/handle header lines, relative dates, engagement counters,
// mentions, and hashtags. The heuristics are deliberately loose; scraped
// markup shifts often and the cleaner only has to keep the message body
// readable, not perfectly reconstruct it.
type Cleaner struct{}

func NewCleaner() *Cleaner {
	return &Cleaner{}
}

func (c *Cleaner) Run(text string) string {
	text = norm.NFC.String(text)
	lines := strings.Split(text, "\n")

	cleanLines := make([]string, 0, len(lines))
	skipHeader := true

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Header lines carry the display name, handle, relative date and
		// verification badge. Skip until the first line that looks like body.
		if skipHeader {
			if strings.ContainsAny(line, "@·✓") || strings.Contains(line, "Replying to") {
				continue
			}
			skipHeader = false
		}

		if isEngagementCounter(trimmed) {
			continue
		}

		if strings.HasPrefix(trimmed, "http") || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "@") {
			continue
		}

		cleanLines = append(cleanLines, line)
	}

	cleaned := strings.TrimSpace(strings.Join(cleanLines, "\n"))

	// Drop inline mentions and hashtags that survived the line pass.
	words := strings.Fields(cleaned)
	kept := make([]string, 0, len(words))
	for _, word := range words {
		if strings.HasPrefix(word, "#") || strings.HasPrefix(word, "@") {
			continue
		}
		kept = append(kept, word)
	}

	return strings.Join(kept, " ")
}

// isEngagementCounter matches trailing metric lines like "42", "1.2K", "3M".
func isEngagementCounter(line string) bool {
	if line == "" {
		return false
	}
	if len(line) > 10 {
		return false
	}

	stripped := strings.NewReplacer("K", "", "M", "", ".", "", ",", "").Replace(line)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
