package appointment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mamacare-health/notify-backend-go/internal/domain/appointment"
	"github.com/mamacare-health/notify-backend-go/internal/domain/notification"
)

type AppointmentServiceImpl struct {
	appointments appointment.Repository
	notifier     notification.Service
}

func NewAppointmentService(appointments appointment.Repository, notifier notification.Service) appointment.AppointmentService {
	return &AppointmentServiceImpl{
		appointments: appointments,
		notifier:     notifier,
	}
}

// UpdateStatus implements appointment.AppointmentService.
//
// Order matters here: every check runs before the write, the write commits
// before the notification goes out, and a failed notification never undoes
// the write. The committed status is the source of truth; the push is a
// best-effort signal about it.
func (s *AppointmentServiceImpl) UpdateStatus(ctx context.Context, req appointment.UpdateStatusRequest) (*appointment.UpdateStatusResponse, error) {
	appt, err := s.appointments.GetByID(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	// 1. Authorization: when the caller identifies itself, it must be the
	// party allowed to drive this transition.
	if req.ActingRecipientID != "" {
		actor := authorizedActor(appt, req.NewStatus)
		if actor == nil || *actor != req.ActingRecipientID {
			return nil, appointment.ErrNotTransitionActor
		}
	}

	// 2. The party to notify must be on the record before anything mutates.
	counterpart := counterpartRecipient(appt, req.NewStatus)
	if counterpart == nil || *counterpart == "" {
		return nil, appointment.ErrMissingCounterpart
	}

	// 3. Persist the transition. This is the durability boundary.
	var reason *string
	if req.CancellationReason != "" {
		reason = &req.CancellationReason
	}

	updated, err := s.appointments.UpdateStatus(ctx, req.AppointmentID, req.NewStatus, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to persist transition: %w", err)
	}

	// 4. Notify the counterpart's devices. Failure is reported inside the
	// response, never rolled back into the transition.
	result, err := s.notifier.SendToRecipient(ctx, *counterpart, buildStatusPayload(updated, req.NewStatus))
	if err != nil {
		slog.Error("status committed but notification failed",
			"appointment_id", updated.ID,
			"new_status", updated.Status,
			"error", err,
		)
		result = notification.FanoutResult{Status: notification.FanoutFailure}
	}

	return &appointment.UpdateStatusResponse{
		AppointmentID: updated.ID,
		NewStatus:     updated.Status,
		Notification:  result,
	}, nil
}

// GetAppointment implements appointment.AppointmentService.
func (s *AppointmentServiceImpl) GetAppointment(ctx context.Context, id string) (*appointment.AppointmentResponse, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := appointment.ToAppointmentResponse(appt)
	return &resp, nil
}

// authorizedActor returns the party allowed to drive the appointment into
// status: the patient for a patient cancellation, the doctor otherwise.
func authorizedActor(a *appointment.Appointment, status appointment.Status) *string {
	if status == appointment.StatusCancelledByPatient {
		return a.PatientID
	}
	return a.DoctorID
}

// counterpartRecipient returns the party to notify: the opposite side from
// the one driving the transition.
func counterpartRecipient(a *appointment.Appointment, status appointment.Status) *string {
	if status == appointment.StatusCancelledByPatient {
		return a.DoctorID
	}
	return a.PatientID
}

var statusPhrases = map[appointment.Status]string{
	appointment.StatusConfirmed:          "confirmed",
	appointment.StatusCompleted:          "completed",
	appointment.StatusDeclinedByDoctor:   "declined by the doctor",
	appointment.StatusCancelledByPatient: "cancelled by the patient",
	appointment.StatusDeclined:           "declined",
}

var statusTitles = map[appointment.Status]string{
	appointment.StatusConfirmed:          "Appointment Confirmed",
	appointment.StatusCompleted:          "Appointment Completed",
	appointment.StatusDeclinedByDoctor:   "Appointment Declined",
	appointment.StatusCancelledByPatient: "Appointment Cancelled",
	appointment.StatusDeclined:           "Appointment Declined",
}

// buildStatusPayload derives the push content for a committed transition.
// Declines carry the stored reason; everything rides at high priority so
// the device shows it promptly.
func buildStatusPayload(a *appointment.Appointment, status appointment.Status) notification.Payload {
	body := "Your appointment has been " + statusPhrases[status] + "."
	if status != appointment.StatusCancelledByPatient && a.DoctorName != nil && *a.DoctorName != "" {
		body = fmt.Sprintf("Your appointment with Dr. %s has been %s.", *a.DoctorName, statusPhrases[status])
	}
	if status.IsDecline() && a.CancellationReason != nil && *a.CancellationReason != "" {
		body += " Reason: " + *a.CancellationReason
	}

	return notification.Payload{
		Title: statusTitles[status],
		Body:  body,
		Data: map[string]string{
			"type":           "appointment_update",
			"appointment_id": a.ID,
			"new_status":     string(status),
			"route":          "/appointments/detail/" + a.ID,
		},
		Priority: notification.PriorityHigh,
	}
}
