package gateway

import (
	"context"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/emailjs"
)

// EmailJSSender is the part of the emailjs client the gateway needs
type EmailJSSender interface {
	Send(ctx context.Context, templateID string, params map[string]string) (emailjs.Receipt, error)
	Ready() bool
}

type emailJSGateway struct {
	client     EmailJSSender
	templateID string
}

// NewEmailJSGateway adapts an initialized emailjs client to the contact form
func NewEmailJSGateway(client EmailJSSender, templateID string) domain.EmailGateway {
	return &emailJSGateway{
		client:     client,
		templateID: templateID,
	}
}

// TemplateParams builds the payload the EmailJS template expects. Values
// are sent as given; the template escapes them when rendering.
func TemplateParams(draft domain.ContactMessageDraft, to domain.Recipient) map[string]string {
	draft = draft.Trimmed()
	return map[string]string{
		"from_name":  draft.Name,
		"from_email": draft.Email,
		"subject":    draft.Subject,
		"message":    draft.Message,
		"to_name":    to.Name,
	}
}

func (g *emailJSGateway) Send(ctx context.Context, draft domain.ContactMessageDraft, to domain.Recipient) (domain.DeliveryReceipt, error) {
	receipt, err := g.client.Send(ctx, g.templateID, TemplateParams(draft, to))
	if err != nil {
		return domain.DeliveryReceipt{}, err
	}
	return domain.DeliveryReceipt{
		Provider: "emailjs",
		Status:   receipt.Status,
		Text:     receipt.Text,
	}, nil
}

func (g *emailJSGateway) IsConfigured() bool {
	return g.templateID != "" && g.client.Ready()
}
