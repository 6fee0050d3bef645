package notify

import "fmt"

// Channel is the medium a message is delivered over.
type Channel string

const (
	// ChannelEmail delivers to an email address.
	ChannelEmail Channel = "email"
	// ChannelSMS delivers to an E.164 phone number.
	ChannelSMS Channel = "sms"
)

// Message is a single notification to a single recipient.
type Message struct {
	Channel Channel
	To      string
	Subject string
	Body    string
}

// NewMessage creates a new Message with the given parameters.
func NewMessage(channel Channel, to, subject, body string) Message {
	return Message{
		Channel: channel,
		To:      to,
		Subject: subject,
		Body:    body,
	}
}

// Delivery counts the outcome of one Notify call.
type Delivery struct {
	// Sent is the number of messages accepted by a sender.
	Sent int

	// Failed is the number of messages a sender returned an error for.
	Failed int

	// Skipped is the number of recipients with no sender for their channel.
	Skipped int
}

// Add accumulates other into d.
func (d *Delivery) Add(other Delivery) {
	d.Sent += other.Sent
	d.Failed += other.Failed
	d.Skipped += other.Skipped
}

func (d Delivery) String() string {
	return fmt.Sprintf("%d sent, %d failed, %d skipped", d.Sent, d.Failed, d.Skipped)
}
