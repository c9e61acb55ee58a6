package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"aubri-backend/internal/domain"
	"aubri-backend/internal/logger"
)

type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridService struct {
	client    mailSender
	fromEmail string
	fromName  string
}

func NewSendGridService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridService) SendModerationResult(ctx context.Context, owner *domain.User, p *domain.Property) error {
	subject, plainText := moderationMessage(owner, p)
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(owner.Name, owner.Email)
	message := mail.NewSingleEmail(from, subject, to, plainText, "")

	response, err := s.client.SendWithContext(ctx, message)
	logger.ExternalServiceResult("sendgrid", "send", err, "propertyID", p.ID)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func moderationMessage(owner *domain.User, p *domain.Property) (string, string) {
	switch p.Status {
	case domain.PropertyStatusApproved:
		body := fmt.Sprintf("Hello %s,\n\nYour listing %q in %s has been approved and is now visible to guests.", owner.Name, p.Title, p.Location)
		if img := p.PrimaryImage(); img != "" {
			body += "\n\nGuests will see this photo first: " + img
		}
		return fmt.Sprintf("Your listing %q is live", p.Title), body + "\n\nThe Aubri Team"
	default:
		return fmt.Sprintf("Your listing %q was not approved", p.Title),
			fmt.Sprintf("Hello %s,\n\nYour listing %q in %s was not approved. Please review the details and contact support if you have questions.\n\nThe Aubri Team", owner.Name, p.Title, p.Location)
	}
}

type logEmailService struct{}

// NewLogEmailService records notifications in the log instead of sending
// them. Used when no SendGrid key is configured.
func NewLogEmailService() EmailService {
	return logEmailService{}
}

func (logEmailService) SendModerationResult(ctx context.Context, owner *domain.User, p *domain.Property) error {
	subject, _ := moderationMessage(owner, p)
	logger.Info("Email not sent, no provider configured", "to", owner.Email, "subject", subject)
	return nil
}
