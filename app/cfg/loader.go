package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Watch configuration
	Account      string `long:"account" env:"TWITTER_ACCOUNT" description:"Account handle to monitor (required unless a watch file supplies it)"`
	WatchFile    string `long:"watch-file" env:"WATCH_FILE" description:"Optional YAML watch definition (account, settings, mute filters)"`
	SourceMode   string `long:"source" env:"SOURCE_MODE" default:"browser" choice:"browser" choice:"oauth1" choice:"oauth2" choice:"rss" choice:"mock" description:"Timeline source variant"`
	Channel      string `long:"notification" env:"NOTIFICATION_CHANNEL" default:"none" choice:"twilio" choice:"discord" choice:"none" description:"Notification channel"`
	PollInterval int    `long:"poll-interval" env:"POLL_INTERVAL" default:"60" description:"Seconds between cycles in loop mode"`
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Per-fetch timeout in seconds"`
	MaxItems     int    `long:"max-items" env:"MAX_ITEMS" default:"20" description:"Maximum normalized items considered per cycle"`
	Once         bool   `long:"once" env:"RUN_ONCE" description:"Run exactly one cycle and exit (CI mode)"`

	// Watermark storage
	StateBackend string `long:"state" env:"STATE_BACKEND" default:"file" choice:"file" choice:"env" choice:"sqlite" description:"Watermark storage backend"`
	StatePath    string `long:"state-path" env:"STATE_PATH" default:"latest_tweet.json" description:"Watermark file path (file backend)"`
	DBPath       string `long:"db-path" env:"DB_PATH" default:"tweetwatch.db" description:"SQLite database path (sqlite backend)"`

	// Source credentials and endpoints
	BearerToken    string `long:"bearer-token" env:"TWITTER_BEARER_TOKEN" description:"OAuth2 app-only bearer token"`
	ConsumerKey    string `long:"consumer-key" env:"TWITTER_CONSUMER_KEY" description:"OAuth1 consumer key"`
	ConsumerSecret string `long:"consumer-secret" env:"TWITTER_CONSUMER_SECRET" description:"OAuth1 consumer secret"`
	AccessToken    string `long:"access-token" env:"TWITTER_ACCESS_TOKEN" description:"OAuth1 access token"`
	AccessSecret   string `long:"access-secret" env:"TWITTER_ACCESS_SECRET" description:"OAuth1 access token secret"`
	APIBaseURL     string `long:"api-base-url" env:"API_BASE_URL" description:"Override the API base URL (tests, proxies)"`
	RSSBaseURL     string `long:"rss-base-url" env:"RSS_BASE_URL" default:"https://nitter.net" description:"RSS mirror base URL (rss source)"`
	BrowserURL     string `long:"browser-url" env:"BROWSER_URL" description:"DevTools WebSocket URL of an external browser (empty = launch locally)"`

	// Notification credentials
	TwilioAccountSID  string `long:"twilio-account-sid" env:"TWILIO_ACCOUNT_SID" description:"Twilio account SID"`
	TwilioAuthToken   string `long:"twilio-auth-token" env:"TWILIO_AUTH_TOKEN" description:"Twilio auth token"`
	TwilioFrom        string `long:"twilio-from" env:"TWILIO_NUMBER" description:"Twilio sender number"`
	TwilioTo          string `long:"twilio-to" env:"YOUR_NUMBER" description:"SMS recipient number"`
	DiscordWebhookURL string `long:"discord-webhook-url" env:"DISCORD_WEBHOOK_URL" description:"Discord channel webhook URL"`

	// Application metadata
	Port      string `long:"port" env:"PORT" description:"Status server port (empty = disabled)"`
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"tweetwatch/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	// A local .env file supplies credentials during development; absence
	// is not an error.
	godotenv.Load()

	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Account:           raw.Account,
		WatchFile:         raw.WatchFile,
		SourceMode:        raw.SourceMode,
		Channel:           raw.Channel,
		PollInterval:      raw.PollInterval,
		FetchTimeout:      raw.FetchTimeout,
		MaxItems:          raw.MaxItems,
		Once:              raw.Once,
		StateBackend:      raw.StateBackend,
		StatePath:         raw.StatePath,
		DBPath:            raw.DBPath,
		BearerToken:       raw.BearerToken,
		ConsumerKey:       raw.ConsumerKey,
		ConsumerSecret:    raw.ConsumerSecret,
		AccessToken:       raw.AccessToken,
		AccessSecret:      raw.AccessSecret,
		APIBaseURL:        raw.APIBaseURL,
		RSSBaseURL:        raw.RSSBaseURL,
		BrowserURL:        raw.BrowserURL,
		TwilioAccountSID:  raw.TwilioAccountSID,
		TwilioAuthToken:   raw.TwilioAuthToken,
		TwilioFrom:        raw.TwilioFrom,
		TwilioTo:          raw.TwilioTo,
		DiscordWebhookURL: raw.DiscordWebhookURL,
		Port:              raw.Port,
		UserAgent:         raw.UserAgent,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Set replaces the global configuration. Intended for tests.
func Set(c *Cfg) {
	globalCfg = c
}
