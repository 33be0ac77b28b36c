package notification

import (
	"github.com/mamacare-health/notify-backend-go/internal/pkg/validator"
)

// ============= Request DTOs =============

// DirectSendRequest represents a request to push to a single device target
type DirectSendRequest struct {
	Token        string            `json:"token"`
	Title        string            `json:"title"`
	Body         string            `json:"body"`
	Data         map[string]string `json:"data,omitempty"`
	HighPriority bool              `json:"high_priority,omitempty"`
}

func (r *DirectSendRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token is required",
		})
	}
	if len(r.Token) > validator.MaxTargetLength {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token exceeds the maximum length",
		})
	}

	errs = append(errs, validatePayloadFields(r.Title, r.Body)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Payload converts the request into a dispatchable payload.
func (r *DirectSendRequest) Payload() Payload {
	return Payload{
		Title:    r.Title,
		Body:     r.Body,
		Data:     r.Data,
		Priority: priorityFor(r.HighPriority),
	}
}

// RecipientSendRequest represents a request to fan a push out to every
// device registered for a recipient. The recipient ID comes from the URL.
type RecipientSendRequest struct {
	Title        string            `json:"title"`
	Body         string            `json:"body"`
	Data         map[string]string `json:"data,omitempty"`
	HighPriority bool              `json:"high_priority,omitempty"`
}

func (r *RecipientSendRequest) Validate() error {
	errs := validatePayloadFields(r.Title, r.Body)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Payload converts the request into a dispatchable payload.
func (r *RecipientSendRequest) Payload() Payload {
	return Payload{
		Title:    r.Title,
		Body:     r.Body,
		Data:     r.Data,
		Priority: priorityFor(r.HighPriority),
	}
}

func validatePayloadFields(title, body string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if len(title) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}
	if validator.IsEmpty(body) {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body is required",
		})
	}
	if len(body) > 2048 {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body must not exceed 2048 characters",
		})
	}

	return errs
}

func priorityFor(high bool) Priority {
	if high {
		return PriorityHigh
	}
	return PriorityNormal
}

// ============= Response DTOs =============

// DirectSendResponse represents the outcome of a single-device push
type DirectSendResponse struct {
	Status    DeliveryStatus `json:"status"`
	MessageID string         `json:"message_id,omitempty"`
}
