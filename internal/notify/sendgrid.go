package notify

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	// SendGridKeyEnv holds the SendGrid API key.
	SendGridKeyEnv = "SENDGRID_API_KEY"

	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
	senderName       = "Recreation.gov Notifier"
)

// ErrMissingSendGridKey is returned when SENDGRID_API_KEY is empty.
var ErrMissingSendGridKey = errors.New(SendGridKeyEnv + " is not set")

// SendGridSender delivers email through the SendGrid v3 API.
type SendGridSender struct {
	log       log15.Logger
	fromEmail string
	apiKey    string
	host      string
}

// NewSendGridSender creates a sender using the key in SENDGRID_API_KEY.
func NewSendGridSender(log log15.Logger, fromEmail string) *SendGridSender {
	return &SendGridSender{
		log:       log,
		fromEmail: fromEmail,
		apiKey:    os.Getenv(SendGridKeyEnv),
		host:      sendGridHost,
	}
}

// Name returns "sendgrid".
func (s *SendGridSender) Name() string {
	return "sendgrid"
}

// Send posts msg as a plain-text email.
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if s.apiKey == "" {
		return ErrMissingSendGridKey
	}

	from := mail.NewEmail(senderName, s.fromEmail)
	to := mail.NewEmail(msg.To, msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, "")

	request := sendgrid.GetRequest(s.apiKey, sendGridEndpoint, s.host)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(message)

	resp, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("sending email to %s: %w", msg.To, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sending email to %s: sendgrid returned status %d: %s", msg.To, resp.StatusCode, resp.Body)
	}

	s.log.Debug("Email sent", "status", resp.StatusCode, "to", msg.To)
	return nil
}
