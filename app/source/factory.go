package source

import (
	"fmt"

	"github.com/lysyi3m/tweetwatch/app/cfg"
)

// New selects the source implementation based on the configured mode.
func New() (Source, error) {
	c := cfg.Get()

	switch c.SourceMode {
	case "browser":
		return NewBrowserSource(c.BrowserURL)
	case "oauth2":
		if c.BearerToken == "" {
			return nil, fmt.Errorf("TWITTER_BEARER_TOKEN is required for oauth2 mode")
		}
		return NewOAuth2Source(c.BearerToken, c.APIBaseURL), nil
	case "oauth1":
		if c.ConsumerKey == "" || c.ConsumerSecret == "" || c.AccessToken == "" || c.AccessSecret == "" {
			return nil, fmt.Errorf("consumer key/secret and access token/secret are required for oauth1 mode")
		}
		return NewOAuth1Source(c.ConsumerKey, c.ConsumerSecret, c.AccessToken, c.AccessSecret, c.APIBaseURL), nil
	case "rss":
		return NewRSSSource(c.RSSBaseURL, c.UserAgent), nil
	case "mock":
		return NewMockSource(), nil
	default:
		return nil, fmt.Errorf("unknown source mode: %s (use 'browser', 'oauth1', 'oauth2', 'rss', or 'mock')", c.SourceMode)
	}
}
