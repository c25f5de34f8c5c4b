package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	"github.com/lysyi3m/tweetwatch/app/timeline"
)

var _ Source = (*OAuth1Source)(nil)

// createdAtLayout is the v1.1 API timestamp format.
const createdAtLayout = time.RubyDate

// OAuth1Source reads the account's timeline through the v1.1 API with
// user-context OAuth1 credentials. The signed http.Client comes from the
// oauth1 package; everything else is a plain JSON GET.
type OAuth1Source struct {
	httpClient *http.Client
	baseURL    string
}

type v1Tweet struct {
	IDStr     string `json:"id_str"`
	FullText  string `json:"full_text"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	User      struct {
		ScreenName string `json:"screen_name"`
	} `json:"user"`
}

func NewOAuth1Source(consumerKey, consumerSecret, accessToken, accessSecret, baseURL string) *OAuth1Source {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}

	config := oauth1.NewConfig(consumerKey, consumerSecret)
	token := oauth1.NewToken(accessToken, accessSecret)

	httpClient := config.Client(oauth1.NoContext, token)
	httpClient.Timeout = 30 * time.Second

	return &OAuth1Source{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *OAuth1Source) Fetch(ctx context.Context, account string) ([]timeline.RawItem, error) {
	handle := strings.TrimPrefix(account, "@")

	endpoint := fmt.Sprintf("%s/1.1/statuses/user_timeline.json?screen_name=%s&count=20&tweet_mode=extended",
		s.baseURL, url.QueryEscape(handle))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timeline: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var tweets []v1Tweet
	if err := json.NewDecoder(resp.Body).Decode(&tweets); err != nil {
		return nil, fmt.Errorf("failed to decode timeline: %w", err)
	}

	items := make([]timeline.RawItem, 0, len(tweets))
	for _, t := range tweets {
		text := t.FullText
		if text == "" {
			text = t.Text
		}

		item := timeline.RawItem{
			Text:      text,
			NativeID:  t.IDStr,
			Permalink: fmt.Sprintf("https://x.com/%s/status/%s", handle, t.IDStr),
			Author:    t.User.ScreenName,
		}

		if parsed, err := time.Parse(createdAtLayout, t.CreatedAt); err == nil {
			utc := parsed.UTC()
			item.CreatedAt = &utc
		}

		items = append(items, item)
	}

	return items, nil
}

func (s *OAuth1Source) Close() error {
	return nil
}
