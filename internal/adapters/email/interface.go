package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMessage is returned when a message is missing a sender, recipient or subject
var ErrInvalidMessage = errors.New("invalid email message")

// Message is a two-part (plain text + HTML) email
type Message struct {
	From     string
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Validate checks the fields every provider needs
func (m *Message) Validate() error {
	if m.From == "" {
		return fmt.Errorf("%w: sender is required", ErrInvalidMessage)
	}
	if len(m.To) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", ErrInvalidMessage)
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	return nil
}

// Sender delivers email messages. Implementations do not retry.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// SendError wraps a delivery failure with the provider and recipients involved
type SendError struct {
	Provider string
	To       []string
	Err      error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("%s: failed to send email to %s: %v", e.Provider, strings.Join(e.To, ","), e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}
