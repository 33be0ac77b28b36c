package appointment

import (
	"time"

	"github.com/mamacare-health/notify-backend-go/internal/domain/notification"
	"github.com/mamacare-health/notify-backend-go/internal/pkg/validator"
)

// ============= Request DTOs =============

// UpdateStatusRequest represents a request to drive an appointment into a
// new status. The appointment ID comes from the URL.
type UpdateStatusRequest struct {
	AppointmentID      string `json:"-"`
	NewStatus          Status `json:"new_status"`
	ActingRecipientID  string `json:"acting_recipient_id,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AppointmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "appointment_id",
			Message: "appointment_id is required",
		})
	}
	if validator.IsEmpty(string(r.NewStatus)) {
		errs = append(errs, validator.ValidationError{
			Field:   "new_status",
			Message: "new_status is required",
		})
	} else if !r.NewStatus.IsTransitionTarget() {
		errs = append(errs, validator.ValidationError{
			Field:   "new_status",
			Message: "new_status must be one of: confirmed, completed, declined_by_doctor, cancelled_by_patient, declined",
		})
	}
	if len(r.CancellationReason) > 1024 {
		errs = append(errs, validator.ValidationError{
			Field:   "cancellation_reason",
			Message: "cancellation_reason must not exceed 1024 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ============= Response DTOs =============

// UpdateStatusResponse reports the committed transition together with the
// result of the counterpart notification.
type UpdateStatusResponse struct {
	AppointmentID string                    `json:"appointment_id"`
	NewStatus     Status                    `json:"new_status"`
	Notification  notification.FanoutResult `json:"notification"`
}

// AppointmentResponse represents an appointment in API responses
type AppointmentResponse struct {
	ID                 string     `json:"id"`
	PatientID          *string    `json:"patient_id,omitempty"`
	DoctorID           *string    `json:"doctor_id,omitempty"`
	DoctorName         *string    `json:"doctor_name,omitempty"`
	Status             Status     `json:"status"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	StatusUpdatedAt    *time.Time `json:"status_updated_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// ToAppointmentResponse maps an entity to its API representation.
func ToAppointmentResponse(a *Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:                 a.ID,
		PatientID:          a.PatientID,
		DoctorID:           a.DoctorID,
		DoctorName:         a.DoctorName,
		Status:             a.Status,
		CancellationReason: a.CancellationReason,
		StatusUpdatedAt:    a.StatusUpdatedAt,
		CreatedAt:          a.CreatedAt,
	}
}
