package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/lysyi3m/tweetwatch/app/timeline"
)

var _ Source = (*OAuth2Source)(nil)

const DefaultAPIBaseURL = "https://api.twitter.com"

// OAuth2Source reads the account's timeline through the v2 API with an
// app-only bearer token. Requests are rate limited client-side: the user
// tweets endpoint allows 1500 requests per 15 minutes per app, so one
// request every 600ms keeps a comfortable margin.
type OAuth2Source struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
	baseURL    string

	mu      sync.Mutex
	userIDs map[string]string // resolved username -> user ID
}

type apiUser struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
}

type apiTweets struct {
	Data []struct {
		ID        string `json:"id"`
		Text      string `json:"text"`
		CreatedAt string `json:"created_at"`
	} `json:"data"`
}

func NewOAuth2Source(bearerToken, baseURL string) *OAuth2Source {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}

	return &OAuth2Source{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(600*time.Millisecond), 1),
		token:      bearerToken,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userIDs:    make(map[string]string),
	}
}

func (s *OAuth2Source) Fetch(ctx context.Context, account string) ([]timeline.RawItem, error) {
	userID, err := s.resolveUserID(ctx, account)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/2/users/%s/tweets?max_results=10&tweet_fields=created_at", s.baseURL, userID)
	var tweets apiTweets
	if err := s.get(ctx, endpoint, &tweets); err != nil {
		return nil, fmt.Errorf("failed to fetch tweets: %w", err)
	}

	handle := strings.TrimPrefix(account, "@")
	items := make([]timeline.RawItem, 0, len(tweets.Data))
	for _, t := range tweets.Data {
		item := timeline.RawItem{
			Text:      t.Text,
			NativeID:  t.ID,
			Permalink: fmt.Sprintf("https://x.com/%s/status/%s", handle, t.ID),
			Author:    handle,
		}

		if parsed, err := time.Parse(time.RFC3339, t.CreatedAt); err == nil {
			item.CreatedAt = &parsed
		}

		items = append(items, item)
	}

	return items, nil
}

func (s *OAuth2Source) Close() error {
	return nil
}

func (s *OAuth2Source) resolveUserID(ctx context.Context, account string) (string, error) {
	handle := strings.TrimPrefix(account, "@")

	s.mu.Lock()
	cached, ok := s.userIDs[handle]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/2/users/by/username/%s", s.baseURL, url.PathEscape(handle))
	var user apiUser
	if err := s.get(ctx, endpoint, &user); err != nil {
		return "", fmt.Errorf("failed to resolve user %s: %w", handle, err)
	}
	if user.Data.ID == "" {
		return "", fmt.Errorf("user %s not found", handle)
	}

	s.mu.Lock()
	s.userIDs[handle] = user.Data.ID
	s.mu.Unlock()

	return user.Data.ID, nil
}

func (s *OAuth2Source) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
