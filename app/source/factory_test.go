package source

import (
	"testing"

	"github.com/lysyi3m/tweetwatch/app/cfg"
)

func TestNew_Mock(t *testing.T) {
	cfg.Set(&cfg.Cfg{SourceMode: "mock"})
	defer cfg.Set(nil)

	src, err := New()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, ok := src.(*MockSource); !ok {
		t.Errorf("Expected *MockSource, got %T", src)
	}
}

func TestNew_OAuth2RequiresToken(t *testing.T) {
	cfg.Set(&cfg.Cfg{SourceMode: "oauth2"})
	defer cfg.Set(nil)

	if _, err := New(); err == nil {
		t.Error("Expected error for missing bearer token, got nil")
	}
}

func TestNew_OAuth1RequiresCredentials(t *testing.T) {
	cfg.Set(&cfg.Cfg{SourceMode: "oauth1", ConsumerKey: "ck"})
	defer cfg.Set(nil)

	if _, err := New(); err == nil {
		t.Error("Expected error for incomplete oauth1 credentials, got nil")
	}
}

func TestNew_UnknownMode(t *testing.T) {
	cfg.Set(&cfg.Cfg{SourceMode: "carrier-pigeon"})
	defer cfg.Set(nil)

	if _, err := New(); err == nil {
		t.Error("Expected error for unknown source mode, got nil")
	}
}
