package notify

import (
	"context"
	"fmt"

	"github.com/inconshreveable/log15"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Twilio rejects bodies longer than this many characters.
const maxSMSLength = 1600

// messageCreator is the subset of the Twilio API used to send texts.
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// SMSSender texts messages through Twilio. Credentials come from TWILIO_ACCOUNT_SID and
// TWILIO_AUTH_TOKEN.
type SMSSender struct {
	log        log15.Logger
	api        messageCreator
	fromNumber string
}

// NewSMSSender creates a Twilio sender from fromNumber.
func NewSMSSender(log log15.Logger, fromNumber string) *SMSSender {
	return &SMSSender{
		log:        log,
		api:        twilio.NewRestClient().Api,
		fromNumber: fromNumber,
	}
}

// Name returns "twilio".
func (s *SMSSender) Name() string {
	return "twilio"
}

// Send texts the subject and body to msg.To.
func (s *SMSSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := SMSBody(msg.Subject, msg.Body)

	params := &openapi.CreateMessageParams{}
	params.SetTo(msg.To)
	params.SetFrom(s.fromNumber)
	params.SetBody(body)
	s.log.Debug(fmt.Sprintf("Will send SMS:\n%s", body))

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("sending SMS to %s: %w", msg.To, err)
	}

	status := ""
	if resp != nil && resp.Status != nil {
		status = *resp.Status
	}
	s.log.Debug("SMS message sent", "status", status, "to", msg.To)
	return nil
}

// SMSBody joins subject and body and truncates the result to Twilio's length limit.
func SMSBody(subject, body string) string {
	text := subject
	if body != "" {
		text += "\n" + body
	}

	runes := []rune(text)
	if len(runes) <= maxSMSLength {
		return text
	}
	return string(runes[:maxSMSLength-3]) + "..."
}
