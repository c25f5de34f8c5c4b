package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

var _ Notifier = (*TwilioNotifier)(nil)

// smsMaxLength caps the outbound SMS body. Twilio splits longer bodies
// into multiple segments, each billed separately.
const smsMaxLength = 1500

// TwilioNotifier sends the digest as an SMS to a single recipient.
type TwilioNotifier struct {
	client *twilio.RestClient
	from   string
	to     string
}

func NewTwilioNotifier(accountSID, authToken, from, to string) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioNotifier{
		client: client,
		from:   from,
		to:     to,
	}
}

func (n *TwilioNotifier) Send(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(message) > smsMaxLength {
		message = message[:smsMaxLength] + "..."
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetBody(message)
	params.SetFrom(n.from)
	params.SetTo(n.to)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	slog.Info("SMS sent", "sid", sid, "to", n.to)

	return nil
}
