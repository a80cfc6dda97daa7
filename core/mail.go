package core

import (
	"context"
	"net/mail"
)

type (
	EmailMessage struct {
		To          []mail.Address
		Subject     string
		TextContent string
		HTMLContent string
	}

	// EmailService is any service that can send emails.
	// SendMessage is synchronous: delivery failure must be reported to the
	// caller so it can decide whether the operation succeeded.
	EmailService interface {
		SendMessage(ctx context.Context, msg *EmailMessage) error
	}
)

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return (m.TextContent != "") || (m.HTMLContent != "") }
