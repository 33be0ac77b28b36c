package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mamacare-health/notify-backend-go/internal/domain/appointment"
	"github.com/mamacare-health/notify-backend-go/internal/domain/recipient"
	"github.com/mamacare-health/notify-backend-go/internal/pkg/database"
	"github.com/mamacare-health/notify-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Appointment domain errors
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		NotFound(w, "Appointment not found")
	case errors.Is(err, appointment.ErrNotTransitionActor):
		Forbidden(w, "Acting recipient is not authorized for this transition")
	case errors.Is(err, appointment.ErrMissingCounterpart):
		UnprocessableEntity(w, "Appointment record is missing the counterpart recipient")

	// Recipient domain errors
	case errors.Is(err, recipient.ErrRecipientNotFound):
		NotFound(w, "Recipient not found")

	// Store availability
	case errors.Is(err, database.ErrUnavailable):
		ServiceUnavailable(w, "Datastore unavailable, try again later")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
