package source

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"github.com/lysyi3m/tweetwatch/app/timeline"
)

var _ Source = (*BrowserSource)(nil)

// maxScrapedArticles bounds how many DOM articles a single fetch inspects.
// The feed page mixes replies from other authors in, so this is scanned
// wider than the normalizer's output cap.
const maxScrapedArticles = 30

// BrowserSource scrapes the account's timeline page with a headless
// browser. It targets the with_replies view of a logged-in profile, which
// works for accounts whose timelines are not served to API clients. The
// browser is launched once and reused across cycles; the caller recreates
// the source after an unrecoverable cycle failure.
type BrowserSource struct {
	browser *rod.Browser
	lnch    *launcher.Launcher
}

func NewBrowserSource(controlURL string) (*BrowserSource, error) {
	s := &BrowserSource{}

	if controlURL == "" {
		s.lnch = launcher.New().Headless(true)
		launched, err := s.lnch.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		controlURL = launched
	}

	s.browser = rod.New().ControlURL(controlURL)
	if err := s.browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return s, nil
}

func (s *BrowserSource) Fetch(ctx context.Context, account string) ([]timeline.RawItem, error) {
	page, err := stealth.Page(s.browser)
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	pageURL := fmt.Sprintf("https://x.com/%s/with_replies", strings.TrimPrefix(account, "@"))
	if err := page.Context(ctx).Navigate(pageURL); err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", pageURL, err)
	}

	if err := page.Context(ctx).WaitLoad(); err != nil {
		slog.Warn("Page load wait timed out, extracting anyway", "url", pageURL, "error", err)
	}

	// The timeline is rendered client-side after load; wait for the DOM to
	// settle before querying it.
	if err := page.Context(ctx).WaitStable(time.Second); err != nil {
		slog.Debug("Page did not stabilize", "url", pageURL, "error", err)
	}

	articles, err := page.Context(ctx).Elements(`article[data-testid="tweet"]`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tweet articles: %w", err)
	}

	items := make([]timeline.RawItem, 0, len(articles))
	for i, article := range articles {
		if i >= maxScrapedArticles {
			break
		}

		text, err := article.Text()
		if err != nil {
			slog.Debug("Failed to read article text", "index", i, "error", err)
			continue
		}

		permalink, id := extractStatusLink(article)

		items = append(items, timeline.RawItem{
			Text:      text,
			NativeID:  id,
			Permalink: permalink,
		})
	}

	slog.Debug("Scraped timeline page", "url", pageURL, "articles", len(articles), "extracted", len(items))

	return items, nil
}

func (s *BrowserSource) Close() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
	}
	if s.lnch != nil {
		s.lnch.Kill()
	}
	return err
}

// extractStatusLink finds the article's permalink anchor and pulls the
// numeric status ID out of it. Returns empty strings when the article has
// no status link, which downstream treats as an item with unknown ID.
func extractStatusLink(article *rod.Element) (string, string) {
	links, err := article.Elements("a")
	if err != nil {
		return "", ""
	}

	for _, link := range links {
		href, err := link.Attribute("href")
		if err != nil || href == nil {
			continue
		}
		if !strings.Contains(*href, "/status/") {
			continue
		}

		permalink := *href
		if strings.HasPrefix(permalink, "/") {
			permalink = "https://x.com" + permalink
		}

		return permalink, StatusIDFromURL(permalink)
	}

	return "", ""
}

// StatusIDFromURL extracts the numeric status ID from a permalink like
// https://x.com/user/status/1234567890123456789?s=20.
func StatusIDFromURL(rawURL string) string {
	_, after, found := strings.Cut(rawURL, "/status/")
	if !found {
		return ""
	}

	id := after
	if i := strings.IndexAny(id, "?#/"); i >= 0 {
		id = id[:i]
	}

	return id
}
