package appointment

import (
	"context"
)

type AppointmentService interface {
	// UpdateStatus validates the transition, persists it, then notifies the
	// counterpart's devices. The status write is the durability boundary:
	// notification failure never rolls it back and is reported inside the
	// response instead.
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*UpdateStatusResponse, error)

	GetAppointment(ctx context.Context, id string) (*AppointmentResponse, error)
}
