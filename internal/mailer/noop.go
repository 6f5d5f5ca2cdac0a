package mailer

import (
	"context"
	"log/slog"
)

// Noop stands in when no SMTP host is configured. It logs what would have
// been sent and reports success.
type Noop struct {
	Logger *slog.Logger
}

func (n Noop) SendWelcome(ctx context.Context, to, name string) error {
	n.Logger.Info("email sending disabled, skipping welcome email", "to", to)
	return nil
}

func (n Noop) SendIssueCreated(ctx context.Context, to, title, issueType, description string) error {
	n.Logger.Info("email sending disabled, skipping issue-created email", "to", to, "title", title)
	return nil
}
