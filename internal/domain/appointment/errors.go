package appointment

import "errors"

// Appointment domain errors
var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotTransitionActor  = errors.New("acting recipient is not authorized for this transition")
	ErrMissingCounterpart  = errors.New("appointment record is missing the counterpart recipient")
)
