// Package mailer sends transactional notification emails. Callers treat
// every send as best effort: failures are logged by the caller and never
// propagate into a request's result.
package mailer

import (
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"
)

//go:generate mockgen -destination=../mocks/mock_mailer.go -package=mocks github.com/AnirbanSinha27/Issue-tracking-platform/internal/mailer Mailer

type Mailer interface {
	SendWelcome(ctx context.Context, to, name string) error
	SendIssueCreated(ctx context.Context, to, title, issueType, description string) error
}

type SMTPMailer struct {
	client *mail.Client
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPMailer{client: client, from: from}, nil
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, to, name string) error {
	return m.send(ctx, to, "Welcome to ApniSec 🚀", welcomeTemplate(name))
}

func (m *SMTPMailer) SendIssueCreated(ctx context.Context, to, title, issueType, description string) error {
	subject := fmt.Sprintf("New Issue Created: %s", title)
	return m.send(ctx, to, subject, issueCreatedTemplate(title, issueType, description))
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, html string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)

	return m.client.DialAndSendWithContext(ctx, msg)
}
