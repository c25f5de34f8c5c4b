package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

var _ Notifier = (*DiscordNotifier)(nil)

// embedMaxLength is Discord's hard limit on embed descriptions minus
// headroom for the truncation marker.
const embedMaxLength = 1500

// embedColor is the accent color of the webhook embed (Discord blurple).
const embedColor = 3447003

// DiscordNotifier posts the digest to a channel webhook as an embed.
type DiscordNotifier struct {
	httpClient *http.Client
	webhookURL string
	account    string
}

type discordPayload struct {
	Content string         `json:"content"`
	Embeds  []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

func NewDiscordNotifier(webhookURL, account string) *DiscordNotifier {
	return &DiscordNotifier{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		webhookURL: webhookURL,
		account:    account,
	}
}

func (n *DiscordNotifier) Send(ctx context.Context, message string) error {
	description := message
	if len(description) > embedMaxLength {
		description = description[:embedMaxLength] + "..."
	}

	payload := discordPayload{
		Content: fmt.Sprintf("New tweets from @%s", n.account),
		Embeds: []discordEmbed{
			{
				Title:       fmt.Sprintf("New tweets from @%s", n.account),
				Description: description,
				Color:       embedColor,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(detail))
	}

	slog.Info("Discord notification sent", "account", n.account)

	return nil
}
