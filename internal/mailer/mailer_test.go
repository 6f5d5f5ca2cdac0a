package mailer

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWelcomeTemplate(t *testing.T) {
	body := welcomeTemplate("Alice")
	assert.Contains(t, body, "Welcome to ApniSec, Alice")
	assert.Contains(t, body, "ApniSec Team")
}

func TestWelcomeTemplateEscapesName(t *testing.T) {
	body := welcomeTemplate(`<script>alert("x")</script>`)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestIssueCreatedTemplate(t *testing.T) {
	body := issueCreatedTemplate("SSRF in webhook", "VAPT", "Internal metadata endpoint reachable")
	assert.Contains(t, body, "SSRF in webhook")
	assert.Contains(t, body, "VAPT")
	assert.Contains(t, body, "Internal metadata endpoint reachable")
}

func TestIssueCreatedTemplateEscapesFields(t *testing.T) {
	body := issueCreatedTemplate("<b>t</b>", "VAPT", `<img src=x onerror="steal()">`)
	assert.NotContains(t, body, "<b>t</b>")
	assert.NotContains(t, body, "<img")
	assert.Contains(t, body, "&lt;b&gt;t&lt;/b&gt;")
}

func TestNoopReportsSuccess(t *testing.T) {
	n := Noop{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	assert.NoError(t, n.SendWelcome(context.Background(), "a@example.com", "Alice"))
	assert.NoError(t, n.SendIssueCreated(context.Background(), "a@example.com", "T", "VAPT", "D"))
}
