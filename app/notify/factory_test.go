package notify

import (
	"testing"

	"github.com/lysyi3m/tweetwatch/app/cfg"
)

func TestNew_None(t *testing.T) {
	cfg.Set(&cfg.Cfg{Channel: "none"})
	defer cfg.Set(nil)

	notifier, err := New()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, ok := notifier.(*NoopNotifier); !ok {
		t.Errorf("Expected *NoopNotifier, got %T", notifier)
	}
}

func TestNew_DiscordRequiresWebhookURL(t *testing.T) {
	cfg.Set(&cfg.Cfg{Channel: "discord"})
	defer cfg.Set(nil)

	if _, err := New(); err == nil {
		t.Error("Expected error for missing webhook URL, got nil")
	}
}

func TestNew_TwilioRequiresCredentials(t *testing.T) {
	cfg.Set(&cfg.Cfg{Channel: "twilio", TwilioAccountSID: "sid"})
	defer cfg.Set(nil)

	if _, err := New(); err == nil {
		t.Error("Expected error for incomplete twilio credentials, got nil")
	}
}

func TestNew_UnknownChannel(t *testing.T) {
	cfg.Set(&cfg.Cfg{Channel: "telegraph"})
	defer cfg.Set(nil)

	if _, err := New(); err == nil {
		t.Error("Expected error for unknown channel, got nil")
	}
}
