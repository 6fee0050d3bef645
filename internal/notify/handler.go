package notify

import (
	"context"

	"github.com/inconshreveable/log15"
)

// Handler sends one notification to every recipient of a parameter set.
type Handler struct {
	log   log15.Logger
	email Sender
	sms   Sender
}

// NewHandler creates a handler. sms may be nil, in which case phone recipients are
// skipped with a warning.
func NewHandler(log log15.Logger, email, sms Sender) *Handler {
	return &Handler{
		log:   log,
		email: email,
		sms:   sms,
	}
}

// Notify sends subject and body to each email address and phone number in order.
// A failed delivery is logged and does not prevent the remaining deliveries.
func (h *Handler) Notify(ctx context.Context, emails, phones []string, subject, body string) Delivery {
	var d Delivery

	for _, to := range emails {
		h.deliver(ctx, h.email, NewMessage(ChannelEmail, to, subject, body), &d)
	}
	for _, to := range phones {
		h.deliver(ctx, h.sms, NewMessage(ChannelSMS, to, subject, body), &d)
	}
	return d
}

func (h *Handler) deliver(ctx context.Context, sender Sender, msg Message, d *Delivery) {
	if sender == nil {
		h.log.Warn("No sender configured, skipping recipient", "channel", msg.Channel, "to", msg.To)
		d.Skipped++
		return
	}

	if err := sender.Send(ctx, msg); err != nil {
		h.log.Error("Could not send notification", "channel", msg.Channel, "sender", sender.Name(), "to", msg.To, "err", err)
		d.Failed++
		return
	}

	h.log.Info("Notification sent", "channel", msg.Channel, "sender", sender.Name(), "to", msg.To)
	d.Sent++
}
