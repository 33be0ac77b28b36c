package appointment

import (
	"context"
)

// Repository defines the appointment persistence interface
type Repository interface {
	GetByID(ctx context.Context, id string) (*Appointment, error)

	// UpdateStatus persists the transition in a single conditional write and
	// returns the updated record. The transition timestamp is assigned by
	// the database server. A nil reason leaves any stored reason untouched.
	UpdateStatus(ctx context.Context, id string, status Status, cancellationReason *string) (*Appointment, error)
}
