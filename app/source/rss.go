package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/lysyi3m/tweetwatch/app/timeline"
)

var _ Source = (*RSSSource)(nil)

// RSSSource reads the account's timeline through an RSS mirror (a
// Nitter-style instance exposing /<account>/rss). It needs no credentials
// at all, at the cost of depending on a third-party mirror staying up.
type RSSSource struct {
	httpClient *http.Client
	parser     *gofeed.Parser
	baseURL    string
	userAgent  string
}

func NewRSSSource(baseURL, userAgent string) *RSSSource {
	return &RSSSource{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		parser:     gofeed.NewParser(),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
	}
}

func (s *RSSSource) Fetch(ctx context.Context, account string) ([]timeline.RawItem, error) {
	handle := strings.TrimPrefix(account, "@")
	feedURL := fmt.Sprintf("%s/%s/rss", s.baseURL, handle)

	req, err := http.NewRequestWithContext(ctx, "GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	feed, err := s.parser.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]timeline.RawItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		permalink := entry.Link
		if permalink == "" {
			permalink = entry.GUID
		}

		item := timeline.RawItem{
			Text:      entry.Title,
			NativeID:  StatusIDFromURL(permalink),
			Permalink: permalink,
			Author:    rssCreator(entry),
		}

		if entry.PublishedParsed != nil {
			utc := entry.PublishedParsed.UTC()
			item.CreatedAt = &utc
		}

		items = append(items, item)
	}

	return items, nil
}

func (s *RSSSource) Close() error {
	return nil
}

// rssCreator pulls the author handle out of an RSS entry. Nitter sets
// dc:creator to "@handle"; retweets and replies surface other handles
// there, which is what lets the normalizer filter them out.
func rssCreator(entry *gofeed.Item) string {
	if entry.DublinCoreExt != nil && len(entry.DublinCoreExt.Creator) > 0 {
		return strings.TrimPrefix(entry.DublinCoreExt.Creator[0], "@")
	}
	if entry.Author != nil {
		return strings.TrimPrefix(entry.Author.Name, "@")
	}
	return ""
}
