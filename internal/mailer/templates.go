package mailer

import (
	"fmt"
	"html"
)

func welcomeTemplate(name string) string {
	return fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif;">
        <h2>Welcome to ApniSec, %s 👋</h2>
        <p>
          Your account has been successfully created.
          You can now report and manage security issues with ease.
        </p>
        <p>
          Stay secure,<br/>
          <strong>ApniSec Team</strong>
        </p>
      </div>
    `, html.EscapeString(name))
}

func issueCreatedTemplate(title, issueType, description string) string {
	return fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif;">
        <h2>New Security Issue Created</h2>
        <p><strong>Title:</strong> %s</p>
        <p><strong>Type:</strong> %s</p>
        <p><strong>Description:</strong></p>
        <p>%s</p>

        <br/>
        <p>
          Our team will review this issue shortly.
        </p>

        <p>
          — ApniSec Security Platform
        </p>
      </div>
    `, html.EscapeString(title), html.EscapeString(issueType), html.EscapeString(description))
}
