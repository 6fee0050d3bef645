// Package notify delivers availability notifications to recipients.
//
// A Handler fans one subject and body out to every email address and phone number of a
// parameter set. Email goes through a Sender chosen by the mail transport:
//
//   - CommandSender runs a local MTA client (mail -s <subject> <recipient>, body on stdin)
//   - SendGridSender posts to the SendGrid v3 API
//
// Phone numbers are texted through SMSSender (Twilio) when an SMS sender number is
// configured. DryRunSender prints messages instead of sending them.
//
// Delivery failures never stop the remaining recipients. They are logged and counted
// in the returned Delivery.
//
// # Usage
//
//	email := notify.NewCommandSender("mail", "")
//	handler := notify.NewHandler(log, email, nil)
//	delivery := handler.Notify(ctx, set.Emails, set.Phones, "Campsite", result.Stdout)
package notify
