package notify

import (
	"fmt"

	"github.com/lysyi3m/tweetwatch/app/cfg"
)

// New selects the notification channel based on configuration.
func New() (Notifier, error) {
	c := cfg.Get()

	switch c.Channel {
	case "twilio":
		if c.TwilioAccountSID == "" || c.TwilioAuthToken == "" || c.TwilioFrom == "" || c.TwilioTo == "" {
			return nil, fmt.Errorf("twilio credentials are not fully configured")
		}
		return NewTwilioNotifier(c.TwilioAccountSID, c.TwilioAuthToken, c.TwilioFrom, c.TwilioTo), nil
	case "discord":
		if c.DiscordWebhookURL == "" {
			return nil, fmt.Errorf("DISCORD_WEBHOOK_URL is not configured")
		}
		return NewDiscordNotifier(c.DiscordWebhookURL, c.Account), nil
	case "none":
		return NewNoopNotifier(), nil
	default:
		return nil, fmt.Errorf("unknown notification channel: %s (use 'twilio', 'discord', or 'none')", c.Channel)
	}
}
