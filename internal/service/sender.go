package service

import (
	"context"
	"fmt"
	"time"

	"points-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// logCodeSender writes codes to the log instead of delivering them. Dev use
// only, paired with the handler echoing the code back.
type logCodeSender struct{}

func NewLogCodeSender() CodeSender {
	return &logCodeSender{}
}

func (s *logCodeSender) SendCode(ctx context.Context, handle, code string, ttl time.Duration) error {
	logger.Info("verification code issued",
		"handle", handle, "code", code, "ttl_seconds", int(ttl.Seconds()))
	return nil
}

type sendgridCodeSender struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewSendGridCodeSender delivers verification codes by email. The contact
// handle must be an email address.
func NewSendGridCodeSender(apiKey, fromEmail, fromName string) CodeSender {
	return &sendgridCodeSender{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendgridCodeSender) SendCode(ctx context.Context, handle, code string, ttl time.Duration) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", handle)
	subject := "Your verification code"
	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(ttl.Minutes()))

	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
