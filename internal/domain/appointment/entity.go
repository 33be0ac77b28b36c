package appointment

import (
	"time"
)

// Status represents the lifecycle state of an appointment
type Status string

const (
	StatusPending            Status = "pending"
	StatusConfirmed          Status = "confirmed"
	StatusScheduled          Status = "scheduled"
	StatusCompleted          Status = "completed"
	StatusDeclinedByDoctor   Status = "declined_by_doctor"
	StatusCancelledByPatient Status = "cancelled_by_patient"
	StatusDeclined           Status = "declined"
)

// transitionTargets is the set of statuses the update workflow may drive an
// appointment into. Initial states (pending, scheduled) are assigned when
// the appointment is created, never through this workflow.
var transitionTargets = map[Status]bool{
	StatusConfirmed:          true,
	StatusCompleted:          true,
	StatusDeclinedByDoctor:   true,
	StatusCancelledByPatient: true,
	StatusDeclined:           true,
}

// IsTransitionTarget reports whether the workflow may drive an appointment
// into s. Any current status is allowed as a predecessor.
func (s Status) IsTransitionTarget() bool {
	return transitionTargets[s]
}

// IsDecline reports whether s represents the doctor turning the
// appointment down. Decline notifications carry the stated reason.
func (s Status) IsDecline() bool {
	return s == StatusDeclinedByDoctor || s == StatusDeclined
}

// Appointment represents a booked consultation between a patient and a
// doctor. Party fields are pointers because historical records may be
// missing them.
type Appointment struct {
	ID                 string
	PatientID          *string
	DoctorID           *string
	DoctorName         *string
	Status             Status
	CancellationReason *string
	StatusUpdatedAt    *time.Time
	CreatedAt          time.Time
}
