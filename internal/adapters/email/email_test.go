package email

import (
	"context"
	"errors"
	"io"
	"net/smtp"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() *Message {
	return &Message{
		From:     "noreply@demo-app.com",
		To:       []string{"ada@example.com"},
		Subject:  "Hello",
		TextBody: "plain",
		HTMLBody: "<p>html</p>",
	}
}

func TestMessageValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Message)
	}{
		{name: "missing sender", mutate: func(m *Message) { m.From = "" }},
		{name: "missing recipients", mutate: func(m *Message) { m.To = nil }},
		{name: "missing subject", mutate: func(m *Message) { m.Subject = "" }},
	}

	require.NoError(t, testMessage().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := testMessage()
			tt.mutate(msg)
			assert.ErrorIs(t, msg.Validate(), ErrInvalidMessage)
		})
	}
}

type fakeSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(ctx context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, in)
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSender(t *testing.T) {
	client := &fakeSES{}
	sender := NewSESSender(client)

	require.NoError(t, sender.Send(context.Background(), testMessage()))
	require.Len(t, client.inputs, 1)

	in := client.inputs[0]
	assert.Equal(t, "noreply@demo-app.com", aws.ToString(in.Source))
	assert.Equal(t, []string{"ada@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "Hello", aws.ToString(in.Message.Subject.Data))
	assert.Equal(t, "plain", aws.ToString(in.Message.Body.Text.Data))
	assert.Equal(t, "<p>html</p>", aws.ToString(in.Message.Body.Html.Data))

	client.err = errors.New("MessageRejected")
	err := sender.Send(context.Background(), testMessage())
	var sendErr *SendError
	require.ErrorAs(t, err, &sendErr)
	assert.Equal(t, "ses", sendErr.Provider)
	assert.ErrorContains(t, err, "MessageRejected")
}

func TestSMTPSender(t *testing.T) {
	sender := NewSMTPSender(&SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p"})

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	sender.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, sender.Send(context.Background(), testMessage()))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@demo-app.com", gotFrom)
	assert.Equal(t, []string{"ada@example.com"}, gotTo)

	raw := string(gotMsg)
	assert.Contains(t, raw, "Subject: Hello\r\n")
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "text/plain; charset=UTF-8")
	assert.Contains(t, raw, "<p>html</p>")

	sender.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}
	assert.ErrorContains(t, sender.Send(context.Background(), testMessage()), "connection refused")
}

func TestSMTPSender_Unconfigured(t *testing.T) {
	err := NewSMTPSender(&SMTPConfig{}).Send(context.Background(), testMessage())
	assert.ErrorContains(t, err, "SMTP host is not configured")
}

func TestLogSender(t *testing.T) {
	var buf strings.Builder
	logger := logrus.New()
	logger.SetOutput(&buf)

	require.NoError(t, NewLogSender(logger).Send(context.Background(), testMessage()))
	assert.Contains(t, buf.String(), "ada@example.com")

	assert.Error(t, NewLogSender(logger).Send(context.Background(), &Message{}))
}

func TestMockSender(t *testing.T) {
	sender := NewMockSender()
	require.NoError(t, sender.Send(context.Background(), testMessage()))
	assert.Len(t, sender.Messages(), 1)

	sender.FailWith(errors.New("down"))
	assert.Error(t, sender.Send(context.Background(), testMessage()))
	assert.Len(t, sender.Messages(), 1)
}

func TestNewSender(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tests := []struct {
		provider string
		ses      SESAPI
		want     Sender
		wantErr  bool
	}{
		{provider: "ses", ses: &fakeSES{}, want: &SESSender{}},
		{provider: "SES", wantErr: true},
		{provider: "smtp", want: &SMTPSender{}},
		{provider: "log", want: &LogSender{}},
		{provider: "", want: &LogSender{}},
		{provider: "mock", want: &MockSender{}},
		{provider: "pigeon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			sender, err := NewSender(tt.provider, tt.ses, &SMTPConfig{}, logger)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, sender)
		})
	}
}
