package services

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/sirupsen/logrus"

	"demo-app-api/internal/adapters/email"
	"demo-app-api/internal/models"
)

// WelcomeSubject is the subject line of the welcome email
const WelcomeSubject = "Welcome to AWS Demo App!"

const welcomeTextTemplate = `Hello {{.Name}},

Welcome to our AWS Demo Application!

Best regards,
The Demo Team`

const welcomeHTMLTemplate = `<html>
<body>
    <h2>Welcome to AWS Demo App!</h2>
    <p>Hello {{.Name}},</p>
    <p>Welcome to our AWS Demo Application!</p>
    <p>You can now explore all the features including:</p>
    <ul>
        <li>File uploads to S3</li>
        <li>Data processing with Lambda</li>
        <li>Secure authentication with Cognito</li>
        <li>Scalable backend with ECS</li>
    </ul>
    <p>Best regards,<br>The Demo Team</p>
</body>
</html>`

var (
	welcomeText = texttemplate.Must(texttemplate.New("welcome_text").Parse(welcomeTextTemplate))
	welcomeHTML = htmltemplate.Must(htmltemplate.New("welcome_html").Parse(welcomeHTMLTemplate))
)

// welcomeNotifier implements the WelcomeNotifier interface
type welcomeNotifier struct {
	sender email.Sender
	from   string
	logger *logrus.Logger
}

// NewWelcomeNotifier creates a notifier sending from the given address
func NewWelcomeNotifier(sender email.Sender, from string, logger *logrus.Logger) WelcomeNotifier {
	return &welcomeNotifier{
		sender: sender,
		from:   from,
		logger: logger,
	}
}

// SendWelcome sends the welcome email to user. There is no retry.
func (n *welcomeNotifier) SendWelcome(ctx context.Context, user *models.User) error {
	msg, err := RenderWelcomeMessage(n.from, user)
	if err != nil {
		return err
	}

	if err := n.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	n.logger.WithField("email", user.Email).Info("Welcome email sent")
	return nil
}

// RenderWelcomeMessage builds the welcome email for user
func RenderWelcomeMessage(from string, user *models.User) (*email.Message, error) {
	var text, html bytes.Buffer

	if err := welcomeText.Execute(&text, user); err != nil {
		return nil, fmt.Errorf("failed to render welcome text: %w", err)
	}
	if err := welcomeHTML.Execute(&html, user); err != nil {
		return nil, fmt.Errorf("failed to render welcome html: %w", err)
	}

	return &email.Message{
		From:     from,
		To:       []string{user.Email},
		Subject:  WelcomeSubject,
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}
