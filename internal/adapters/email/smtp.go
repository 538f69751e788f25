package email

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
)

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPSender delivers messages through an SMTP relay
type SMTPSender struct {
	config   *SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(config *SMTPConfig) *SMTPSender {
	return &SMTPSender{
		config:   config,
		sendMail: smtp.SendMail,
	}
}

// Send implements Sender.Send
func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	if err := msg.Validate(); err != nil {
		return &SendError{Provider: "smtp", To: msg.To, Err: err}
	}
	if s.config == nil || s.config.Host == "" {
		return &SendError{Provider: "smtp", To: msg.To, Err: fmt.Errorf("SMTP host is not configured")}
	}
	if err := ctx.Err(); err != nil {
		return &SendError{Provider: "smtp", To: msg.To, Err: err}
	}

	raw, err := buildMIMEMessage(msg)
	if err != nil {
		return &SendError{Provider: "smtp", To: msg.To, Err: err}
	}

	var auth smtp.Auth
	if s.config.Username != "" && s.config.Password != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	if err := s.sendMail(addr, auth, msg.From, msg.To, raw); err != nil {
		return &SendError{Provider: "smtp", To: msg.To, Err: err}
	}

	return nil
}

// buildMIMEMessage renders msg as a multipart/alternative message
func buildMIMEMessage(msg *Message) ([]byte, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	parts := []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=UTF-8", msg.TextBody},
		{"text/html; charset=UTF-8", msg.HTMLBody},
	}

	for _, p := range parts {
		if p.content == "" {
			continue
		}
		part, err := writer.CreatePart(textproto.MIMEHeader{"Content-Type": {p.contentType}})
		if err != nil {
			return nil, err
		}
		if _, err := part.Write([]byte(p.content)); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "From: %s\r\n", msg.From)
	fmt.Fprintf(&out, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&out, "Subject: %s\r\n", msg.Subject)
	out.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&out, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", writer.Boundary())
	out.Write(body.Bytes())

	return out.Bytes(), nil
}
