package cfg

type Cfg struct {
	// Watch configuration
	Account      string
	WatchFile    string
	SourceMode   string
	Channel      string
	PollInterval int
	FetchTimeout int
	MaxItems     int
	Once         bool

	// Watermark storage
	StateBackend string
	StatePath    string
	DBPath       string

	// Source credentials and endpoints
	BearerToken    string
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
	APIBaseURL     string
	RSSBaseURL     string
	BrowserURL     string

	// Notification credentials
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioFrom        string
	TwilioTo          string
	DiscordWebhookURL string

	// Application metadata
	Port      string
	UserAgent string
	Debug     bool
	Version   string
}
