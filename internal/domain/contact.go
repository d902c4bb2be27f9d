package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Contact form field names, as exposed to clients
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// Field error codes
const (
	CodeTooShort      = "too_short"
	CodeInvalidFormat = "invalid_format"
)

var (
	ErrSubmissionInFlight   = errors.New("a submission is already in progress")
	ErrUnknownField         = errors.New("unknown contact form field")
	ErrSessionNotFound      = errors.New("contact form session not found")
	ErrTooManySessions      = errors.New("too many open contact form sessions")
	ErrGatewayNotConfigured = errors.New("email delivery is not configured")
)

// ContactMessageDraft is the in-progress message a visitor is composing
type ContactMessageDraft struct {
	Name    string `json:"name" validate:"trimmed_min=2"`
	Email   string `json:"email" validate:"contact_email"`
	Subject string `json:"subject" validate:"trimmed_min=5"`
	Message string `json:"message" validate:"trimmed_min=10"`
}

// IsEmpty reports whether every field is blank
func (d ContactMessageDraft) IsEmpty() bool {
	return d == ContactMessageDraft{}
}

// With returns a copy of the draft with one field replaced
func (d ContactMessageDraft) With(field, value string) (ContactMessageDraft, error) {
	switch field {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldSubject:
		d.Subject = value
	case FieldMessage:
		d.Message = value
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return d, nil
}

// Trimmed returns the draft with surrounding whitespace removed from every field
func (d ContactMessageDraft) Trimmed() ContactMessageDraft {
	return ContactMessageDraft{
		Name:    strings.TrimSpace(d.Name),
		Email:   strings.TrimSpace(d.Email),
		Subject: strings.TrimSpace(d.Subject),
		Message: strings.TrimSpace(d.Message),
	}
}

// FieldErrors maps a field name to its error code. Empty means submittable.
type FieldErrors map[string]string

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// ValidationError is returned by Submit when the draft is not submittable
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+":"+e.Fields[name])
	}
	return "invalid contact form: " + strings.Join(parts, ", ")
}

// SubmissionState is the lifecycle of a single form instance
type SubmissionState string

const (
	StateIdle       SubmissionState = "idle"
	StateSubmitting SubmissionState = "submitting"
	StateSucceeded  SubmissionState = "succeeded"
	StateFailed     SubmissionState = "failed"
)

type NotificationVariant string

const (
	NotificationSuccess NotificationVariant = "success"
	NotificationError   NotificationVariant = "error"
)

// Notification is the user-visible acknowledgment of one submit attempt
type Notification struct {
	Variant     NotificationVariant `json:"variant"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Dismissible bool                `json:"dismissible"`
}

func SuccessNotification() Notification {
	return Notification{
		Variant:     NotificationSuccess,
		Title:       "Message sent!",
		Description: "Thank you for your message. I will get back to you soon.",
		Dismissible: true,
	}
}

func ErrorNotification() Notification {
	return Notification{
		Variant:     NotificationError,
		Title:       "Error",
		Description: "Something went wrong. Please try again later.",
		Dismissible: true,
	}
}

// ContactFormSnapshot is a consistent view of a form instance
type ContactFormSnapshot struct {
	ID          string              `json:"id,omitempty"`
	State       SubmissionState     `json:"state"`
	LastOutcome SubmissionState     `json:"last_outcome,omitempty"`
	Draft       ContactMessageDraft `json:"draft"`
	Errors      FieldErrors         `json:"errors"`
	CanSubmit   bool                `json:"can_submit"`
}

// StateChange is pushed to subscribers on every transition or draft edit
type StateChange struct {
	ContactFormSnapshot
	Notification *Notification `json:"notification,omitempty"`
}

// Recipient describes who receives contact messages
type Recipient struct {
	Name  string
	Email string
}

// DeliveryReceipt is what the gateway reports on success
type DeliveryReceipt struct {
	Provider string `json:"provider"`
	Status   int    `json:"status,omitempty"`
	Text     string `json:"text,omitempty"`
}

// EmailGateway delivers a contact message to the site owner
type EmailGateway interface {
	Send(ctx context.Context, draft ContactMessageDraft, to Recipient) (DeliveryReceipt, error)
	IsConfigured() bool
}

// SubmitResult is the outcome of a successful submit
type SubmitResult struct {
	Receipt      DeliveryReceipt `json:"receipt"`
	Notification Notification    `json:"notification"`
}

// DeliveryFailure wraps a gateway error together with the notification shown to the user
type DeliveryFailure struct {
	Notification Notification
	Err          error
}

func (e *DeliveryFailure) Error() string {
	return "contact delivery failed: " + e.Err.Error()
}

func (e *DeliveryFailure) Unwrap() error {
	return e.Err
}

// ContactForm is one visitor's form instance
type ContactForm interface {
	SetField(field, value string) (ContactFormSnapshot, error)
	// SetFields applies several edits atomically; nothing changes if any name is unknown
	SetFields(fields map[string]string) (ContactFormSnapshot, error)
	Snapshot() ContactFormSnapshot
	Submit(ctx context.Context) (*SubmitResult, error)
	// Reset clears the draft, e.g. when the visitor navigates away
	Reset() error
	Subscribe(fn func(StateChange)) (unsubscribe func())
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates and sends a one-shot contact form message
	SendContactMessage(ctx context.Context, draft ContactMessageDraft) (*SubmitResult, error)
	// OpenForm starts a new form session
	OpenForm() (string, ContactForm, error)
	// Form looks up an open form session
	Form(id string) (ContactForm, error)
	// CloseForm discards a form session and its draft
	CloseForm(id string) error
}
