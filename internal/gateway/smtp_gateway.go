package gateway

import (
	"context"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/email"
)

type smtpGateway struct {
	emailService *email.EmailService
}

// NewSMTPGateway delivers contact messages through the SMTP email service
func NewSMTPGateway(emailService *email.EmailService) domain.EmailGateway {
	return &smtpGateway{emailService: emailService}
}

func (g *smtpGateway) Send(ctx context.Context, draft domain.ContactMessageDraft, to domain.Recipient) (domain.DeliveryReceipt, error) {
	draft = draft.Trimmed()
	data := email.ContactEmailData{
		SenderName:    draft.Name,
		SenderEmail:   draft.Email,
		Subject:       draft.Subject,
		Message:       draft.Message,
		RecipientName: to.Name,
	}
	if err := g.emailService.SendContactEmail(ctx, data); err != nil {
		return domain.DeliveryReceipt{}, err
	}
	return domain.DeliveryReceipt{Provider: "smtp"}, nil
}

func (g *smtpGateway) IsConfigured() bool {
	return g.emailService.IsConfigured()
}
