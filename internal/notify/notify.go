// Package notify tells the site owner about new contact submissions.
package notify

import (
	"context"
	"fmt"

	"car-leasing/internal/model"

	"github.com/rs/zerolog"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Notifier is told about every stored contact submission.
type Notifier interface {
	ContactReceived(ctx context.Context, contact model.Contact) error
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) ContactReceived(context.Context, model.Contact) error { return nil }

type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridNotifier e-mails contact submissions through SendGrid.
type SendGridNotifier struct {
	client    mailSender
	fromEmail string
	fromName  string
	to        string
	logger    zerolog.Logger
}

// NewSendGridNotifier creates a notifier that sends from fromEmail to to.
func NewSendGridNotifier(apiKey, fromEmail, fromName, to string, logger zerolog.Logger) *SendGridNotifier {
	return newSendGridNotifier(sendgrid.NewSendClient(apiKey), fromEmail, fromName, to, logger)
}

func newSendGridNotifier(client mailSender, fromEmail, fromName, to string, logger zerolog.Logger) *SendGridNotifier {
	return &SendGridNotifier{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		to:        to,
		logger:    logger.With().Str("component", "sendgrid-notifier").Logger(),
	}
}

func (n *SendGridNotifier) ContactReceived(ctx context.Context, contact model.Contact) error {
	from := mail.NewEmail(n.fromName, n.fromEmail)
	recipient := mail.NewEmail("", n.to)
	subject := fmt.Sprintf("New contact message from %s", contact.Name)
	plainText := fmt.Sprintf("From: %s <%s>\n\n%s", contact.Name, contact.Email, contact.Message)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")
	message.SetReplyTo(mail.NewEmail(contact.Name, contact.Email))

	response, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	n.logger.Debug().Int64("contact_id", contact.ID).Msg("contact notification sent")
	return nil
}
