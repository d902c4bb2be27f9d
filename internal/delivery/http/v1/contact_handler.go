package v1

import (
	"errors"
	"io"
	"net/http"
	"time"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

const sseKeepAlive = 25 * time.Second

type ContactHandler struct {
	contactUC domain.ContactUsecase
	shutdown  <-chan struct{}
}

// NewContactHandler registers the contact routes (public, no auth required).
// submitLimit guards the routes that reach the email gateway, editLimit the
// field edits. Event streams end when shutdown is closed.
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, submitLimit, editLimit gin.HandlerFunc, shutdown <-chan struct{}) {
	handler := &ContactHandler{
		contactUC: contactUC,
		shutdown:  shutdown,
	}

	public.POST("/contact", submitLimit, handler.SubmitContact)

	forms := public.Group("/contact/forms")
	{
		forms.POST("", handler.OpenForm)
		forms.GET("/:id", handler.GetForm)
		forms.PATCH("/:id", editLimit, handler.UpdateForm)
		forms.DELETE("/:id", handler.CloseForm)
		forms.POST("/:id/submit", submitLimit, handler.SubmitForm)
		forms.GET("/:id/events", handler.StreamForm)
	}
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validate and send a complete message in one request.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactMessageDraft  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var draft domain.ContactMessageDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	result, err := h.contactUC.SendContactMessage(c.Request.Context(), draft)
	if err != nil {
		c.Error(contactError(err))
		return
	}

	response.Success(c, http.StatusOK, result.Notification.Description, result)
}

// OpenForm godoc
// @Summary      Open a contact form session
// @Tags         contact
// @Produce      json
// @Success      201  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /contact/forms [post]
func (h *ContactHandler) OpenForm(c *gin.Context) {
	_, form, err := h.contactUC.OpenForm()
	if err != nil {
		c.Error(contactError(err))
		return
	}
	response.Success(c, http.StatusCreated, "Form opened", form.Snapshot())
}

// GetForm godoc
// @Summary      Get a contact form session
// @Tags         contact
// @Produce      json
// @Param        id   path      string  true  "Form ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /contact/forms/{id} [get]
func (h *ContactHandler) GetForm(c *gin.Context) {
	form, err := h.contactUC.Form(c.Param("id"))
	if err != nil {
		c.Error(contactError(err))
		return
	}
	response.Success(c, http.StatusOK, "Form retrieved", form.Snapshot())
}

// UpdateForm godoc
// @Summary      Edit contact form fields
// @Description  Set one or more of name, email, subject, message. Errors are recomputed on every edit.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        id      path      string             true  "Form ID"
// @Param        fields  body      map[string]string  true  "Field values"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Router       /contact/forms/{id} [patch]
func (h *ContactHandler) UpdateForm(c *gin.Context) {
	form, err := h.contactUC.Form(c.Param("id"))
	if err != nil {
		c.Error(contactError(err))
		return
	}

	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.Error(apperror.BadRequest("Body must be an object of string fields"))
		return
	}

	snapshot, err := form.SetFields(fields)
	if err != nil {
		c.Error(contactError(err))
		return
	}
	response.Success(c, http.StatusOK, "Form updated", snapshot)
}

// SubmitForm godoc
// @Summary      Submit a contact form session
// @Description  Sends the draft once. A failed delivery keeps the draft so the visitor can retry.
// @Tags         contact
// @Produce      json
// @Param        id   path      string  true  "Form ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /contact/forms/{id}/submit [post]
func (h *ContactHandler) SubmitForm(c *gin.Context) {
	form, err := h.contactUC.Form(c.Param("id"))
	if err != nil {
		c.Error(contactError(err))
		return
	}

	result, err := form.Submit(c.Request.Context())
	if err != nil {
		c.Error(contactError(err))
		return
	}
	response.Success(c, http.StatusOK, result.Notification.Description, result)
}

// CloseForm godoc
// @Summary      Discard a contact form session
// @Tags         contact
// @Param        id   path  string  true  "Form ID"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /contact/forms/{id} [delete]
func (h *ContactHandler) CloseForm(c *gin.Context) {
	if err := h.contactUC.CloseForm(c.Param("id")); err != nil {
		c.Error(contactError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// StreamForm godoc
// @Summary      Stream contact form state changes
// @Description  Server-sent events: "state" for every transition or edit, "ping" as keep-alive.
// @Tags         contact
// @Produce      text/event-stream
// @Param        id   path  string  true  "Form ID"
// @Success      200
// @Failure      404  {object}  response.Response
// @Router       /contact/forms/{id}/events [get]
func (h *ContactHandler) StreamForm(c *gin.Context) {
	form, err := h.contactUC.Form(c.Param("id"))
	if err != nil {
		c.Error(contactError(err))
		return
	}

	// Slow readers lose intermediate edits, never block the controller
	events := make(chan domain.StateChange, 32)
	unsubscribe := form.Subscribe(func(change domain.StateChange) {
		select {
		case events <- change:
		default:
		}
	})
	defer unsubscribe()

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	c.SSEvent("state", domain.StateChange{ContactFormSnapshot: form.Snapshot()})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case change := <-events:
			c.SSEvent("state", change)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		case <-h.shutdown:
			return false
		}
	})
}

// contactError maps usecase errors to client-safe API errors
func contactError(err error) *apperror.AppError {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return apperror.Unprocessable("Please correct the highlighted fields.", gin.H{
			"fields":   validationErr.Fields,
			"messages": validation.Messages(validationErr.Fields),
		})
	}

	var failure *domain.DeliveryFailure
	if errors.As(err, &failure) {
		details := gin.H{"notification": failure.Notification}
		if errors.Is(err, domain.ErrGatewayNotConfigured) {
			return apperror.ServiceUnavailable(failure.Notification.Description, err).WithDetails(details)
		}
		return apperror.BadGateway(failure.Notification.Description, err).WithDetails(details)
	}

	switch {
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return apperror.Conflict("Your message is already being sent.")
	case errors.Is(err, domain.ErrUnknownField):
		return apperror.BadRequest(err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		return apperror.NotFound("Contact form not found or expired")
	case errors.Is(err, domain.ErrTooManySessions):
		return apperror.ServiceUnavailable("Contact form temporarily unavailable", err)
	case errors.Is(err, domain.ErrGatewayNotConfigured):
		return apperror.ServiceUnavailable("Contact service temporarily unavailable", err)
	default:
		return apperror.Internal(err)
	}
}
