package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDiscordNotifier_Send(t *testing.T) {
	var received discordPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("Failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	notifier := NewDiscordNotifier(server.URL, "someuser")
	if err := notifier.Send(context.Background(), "hello there"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if len(received.Embeds) != 1 {
		t.Fatalf("Expected 1 embed, got %d", len(received.Embeds))
	}
	if received.Embeds[0].Description != "hello there" {
		t.Errorf("Unexpected embed description: %q", received.Embeds[0].Description)
	}
	if !strings.Contains(received.Embeds[0].Title, "@someuser") {
		t.Errorf("Expected account in embed title, got %q", received.Embeds[0].Title)
	}
}

func TestDiscordNotifier_TruncatesLongMessages(t *testing.T) {
	var received discordPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	notifier := NewDiscordNotifier(server.URL, "someuser")
	long := strings.Repeat("x", embedMaxLength+100)
	if err := notifier.Send(context.Background(), long); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if len(received.Embeds[0].Description) != embedMaxLength+3 {
		t.Errorf("Expected description truncated to %d+3, got %d", embedMaxLength, len(received.Embeds[0].Description))
	}
	if !strings.HasSuffix(received.Embeds[0].Description, "...") {
		t.Error("Expected truncation marker")
	}
}

func TestDiscordNotifier_WebhookError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid payload"}`))
	}))
	defer server.Close()

	notifier := NewDiscordNotifier(server.URL, "someuser")
	err := notifier.Send(context.Background(), "hello")
	if err == nil {
		t.Fatal("Expected error for non-2xx webhook response, got nil")
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("Expected status code in error, got: %v", err)
	}
}
