package email

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogSender writes messages to the log instead of delivering them. It is the
// default for local development.
type LogSender struct {
	logger *logrus.Logger
}

// NewLogSender creates a new log-only sender
func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send implements Sender.Send
func (s *LogSender) Send(ctx context.Context, msg *Message) error {
	if err := msg.Validate(); err != nil {
		return &SendError{Provider: "log", To: msg.To, Err: err}
	}

	s.logger.WithFields(logrus.Fields{
		"from":    msg.From,
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("Email delivery skipped (log provider)")

	return nil
}
