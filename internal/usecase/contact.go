package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/sanitize"
	"portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var defaultValidator = validation.New()

// Normalize returns the draft as it will be delivered: trimmed, with markup
// stripped from the free text fields.
func Normalize(draft domain.ContactMessageDraft) domain.ContactMessageDraft {
	return domain.ContactMessageDraft{
		Name:    sanitize.PlainText(draft.Name),
		Email:   strings.TrimSpace(draft.Email),
		Subject: sanitize.PlainText(draft.Subject),
		Message: sanitize.PlainText(draft.Message),
	}
}

// Validate reports every field of draft that violates its rule. Fields are
// checked independently on the normalized draft; an empty result means the
// draft is submittable.
func Validate(draft domain.ContactMessageDraft) domain.FieldErrors {
	return ValidateWith(defaultValidator, draft)
}

// ValidateWith is Validate with a caller supplied validator instance
func ValidateWith(v *validator.Validate, draft domain.ContactMessageDraft) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if err := v.Struct(Normalize(draft)); err != nil {
		for field, code := range validation.FieldCodes(err) {
			errs[field] = code
		}
	}
	return errs
}

// contactForm is the controller of a single form instance. At most one
// gateway call is outstanding per instance; the lock is never held across it.
type contactForm struct {
	gateway   domain.EmailGateway
	recipient domain.Recipient
	validate  *validator.Validate
	now       func() time.Time

	mu          sync.Mutex
	id          string
	draft       domain.ContactMessageDraft
	errors      domain.FieldErrors
	state       domain.SubmissionState
	lastOutcome domain.SubmissionState
	lastActive  time.Time
	subscribers map[int]func(domain.StateChange)
	nextSubID   int
}

func newContactForm(id string, gateway domain.EmailGateway, recipient domain.Recipient, v *validator.Validate) *contactForm {
	if v == nil {
		v = defaultValidator
	}
	f := &contactForm{
		gateway:     gateway,
		recipient:   recipient,
		validate:    v,
		now:         time.Now,
		id:          id,
		errors:      domain.FieldErrors{},
		state:       domain.StateIdle,
		subscribers: make(map[int]func(domain.StateChange)),
	}
	f.lastActive = f.now()
	return f
}

func (f *contactForm) SetField(field, value string) (domain.ContactFormSnapshot, error) {
	return f.SetFields(map[string]string{field: value})
}

func (f *contactForm) SetFields(fields map[string]string) (domain.ContactFormSnapshot, error) {
	f.mu.Lock()
	f.lastActive = f.now()

	if f.state == domain.StateSubmitting {
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap, domain.ErrSubmissionInFlight
	}

	draft := f.draft
	for name, value := range fields {
		var err error
		if draft, err = draft.With(name, value); err != nil {
			snap := f.snapshotLocked()
			f.mu.Unlock()
			return snap, err
		}
	}

	f.draft = draft
	f.errors = ValidateWith(f.validate, f.draft)
	change := f.changeLocked(nil)
	subs := f.subscribersLocked()
	f.mu.Unlock()

	publish(subs, change)
	return change.ContactFormSnapshot, nil
}

func (f *contactForm) setDraft(draft domain.ContactMessageDraft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = draft
	f.errors = ValidateWith(f.validate, draft)
}

func (f *contactForm) Snapshot() domain.ContactFormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastActive = f.now()
	return f.snapshotLocked()
}

// Submit sends the current draft exactly once. On success the draft is
// cleared; on failure it is kept as submitted so the visitor can retry.
func (f *contactForm) Submit(ctx context.Context) (*domain.SubmitResult, error) {
	f.mu.Lock()
	f.lastActive = f.now()

	if f.state == domain.StateSubmitting {
		f.mu.Unlock()
		return nil, domain.ErrSubmissionInFlight
	}

	f.errors = ValidateWith(f.validate, f.draft)
	if !f.errors.Empty() {
		fields := copyErrors(f.errors)
		change := f.changeLocked(nil)
		subs := f.subscribersLocked()
		f.mu.Unlock()
		publish(subs, change)
		return nil, &domain.ValidationError{Fields: fields}
	}

	f.state = domain.StateSubmitting
	submitted := Normalize(f.draft)
	change := f.changeLocked(nil)
	subs := f.subscribersLocked()
	f.mu.Unlock()
	publish(subs, change)

	var receipt domain.DeliveryReceipt
	sendErr := domain.ErrGatewayNotConfigured
	if f.gateway != nil && f.gateway.IsConfigured() {
		// A client hanging up must not abort a send whose outcome we still report
		receipt, sendErr = f.gateway.Send(context.WithoutCancel(ctx), submitted, f.recipient)
	}

	f.mu.Lock()
	f.lastActive = f.now()
	var note domain.Notification
	if sendErr != nil {
		f.state = domain.StateFailed
		note = domain.ErrorNotification()
	} else {
		f.state = domain.StateSucceeded
		f.draft = domain.ContactMessageDraft{}
		f.errors = domain.FieldErrors{}
		note = domain.SuccessNotification()
	}
	f.lastOutcome = f.state
	terminal := f.changeLocked(&note)
	f.state = domain.StateIdle
	idle := f.changeLocked(nil)
	subs = f.subscribersLocked()
	f.mu.Unlock()

	publish(subs, terminal)
	publish(subs, idle)

	if sendErr != nil {
		logger.Log.Error("Contact message delivery failed", "form_id", f.id, "error", sendErr)
		return nil, &domain.DeliveryFailure{Notification: note, Err: sendErr}
	}

	logger.Log.Info("Contact message delivered", "form_id", f.id, "provider", receipt.Provider)
	return &domain.SubmitResult{Receipt: receipt, Notification: note}, nil
}

func (f *contactForm) Reset() error {
	f.mu.Lock()
	f.lastActive = f.now()
	if f.state == domain.StateSubmitting {
		f.mu.Unlock()
		return domain.ErrSubmissionInFlight
	}
	f.draft = domain.ContactMessageDraft{}
	f.errors = domain.FieldErrors{}
	f.lastOutcome = ""
	change := f.changeLocked(nil)
	subs := f.subscribersLocked()
	f.mu.Unlock()

	publish(subs, change)
	return nil
}

func (f *contactForm) Subscribe(fn func(domain.StateChange)) func() {
	f.mu.Lock()
	id := f.nextSubID
	f.nextSubID++
	f.subscribers[id] = fn
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subscribers, id)
			f.mu.Unlock()
		})
	}
}

// idleSince reports when the form was last used and whether it may be evicted
func (f *contactForm) idleSince() (time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastActive, f.state != domain.StateSubmitting
}

func (f *contactForm) snapshotLocked() domain.ContactFormSnapshot {
	return domain.ContactFormSnapshot{
		ID:          f.id,
		State:       f.state,
		LastOutcome: f.lastOutcome,
		Draft:       f.draft,
		Errors:      copyErrors(f.errors),
		CanSubmit:   f.state == domain.StateIdle && ValidateWith(f.validate, f.draft).Empty(),
	}
}

func (f *contactForm) changeLocked(note *domain.Notification) domain.StateChange {
	return domain.StateChange{
		ContactFormSnapshot: f.snapshotLocked(),
		Notification:        note,
	}
}

func (f *contactForm) subscribersLocked() []func(domain.StateChange) {
	subs := make([]func(domain.StateChange), 0, len(f.subscribers))
	for _, fn := range f.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

func publish(subs []func(domain.StateChange), change domain.StateChange) {
	for _, fn := range subs {
		fn(change)
	}
}

func copyErrors(errs domain.FieldErrors) domain.FieldErrors {
	out := make(domain.FieldErrors, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out
}

type contactUsecase struct {
	gateway   domain.EmailGateway
	recipient domain.Recipient
	validate  *validator.Validate
	sessions  *FormSessionStore
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(gateway domain.EmailGateway, recipient domain.Recipient, validate *validator.Validate, sessions *FormSessionStore) domain.ContactUsecase {
	if validate == nil {
		validate = defaultValidator
	}
	return &contactUsecase{
		gateway:   gateway,
		recipient: recipient,
		validate:  validate,
		sessions:  sessions,
	}
}

func (uc *contactUsecase) newForm(id string) *contactForm {
	return newContactForm(id, uc.gateway, uc.recipient, uc.validate)
}

// SendContactMessage validates the draft and sends it through a throwaway form instance
func (uc *contactUsecase) SendContactMessage(ctx context.Context, draft domain.ContactMessageDraft) (*domain.SubmitResult, error) {
	form := uc.newForm("")
	form.setDraft(draft)

	result, err := form.Submit(ctx)
	if err != nil {
		var failure *domain.DeliveryFailure
		if errors.As(err, &failure) {
			return nil, fmt.Errorf("failed to send contact email: %w", err)
		}
		return nil, err
	}
	return result, nil
}

func (uc *contactUsecase) OpenForm() (string, domain.ContactForm, error) {
	if uc.sessions == nil {
		return "", nil, domain.ErrGatewayNotConfigured
	}
	id, form, err := uc.sessions.Create(uc.newForm)
	if err != nil {
		return "", nil, err
	}
	return id, form, nil
}

func (uc *contactUsecase) Form(id string) (domain.ContactForm, error) {
	if uc.sessions == nil {
		return nil, domain.ErrSessionNotFound
	}
	form, err := uc.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return form, nil
}

func (uc *contactUsecase) CloseForm(id string) error {
	if uc.sessions == nil {
		return domain.ErrSessionNotFound
	}
	return uc.sessions.Delete(id)
}
