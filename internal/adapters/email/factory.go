package email

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Provider represents the email delivery implementation
type Provider string

const (
	ProviderSES  Provider = "ses"
	ProviderSMTP Provider = "smtp"
	ProviderLog  Provider = "log"
	ProviderMock Provider = "mock"
)

// NewSender creates the Sender for provider. sesClient is only used for SES.
func NewSender(provider string, sesClient SESAPI, smtpConfig *SMTPConfig, logger *logrus.Logger) (Sender, error) {
	switch Provider(strings.ToLower(provider)) {
	case ProviderSES:
		if sesClient == nil {
			return nil, fmt.Errorf("ses client is required")
		}
		return NewSESSender(sesClient), nil
	case ProviderSMTP:
		return NewSMTPSender(smtpConfig), nil
	case ProviderLog, "":
		return NewLogSender(logger), nil
	case ProviderMock:
		return NewMockSender(), nil
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", provider)
	}
}
