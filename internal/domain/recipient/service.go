package recipient

import (
	"context"
)

// RecipientService manages device target registration
type RecipientService interface {
	// RegisterTarget attaches a device token to the recipient profile.
	// Registering a token that is already attached is a no-op.
	RegisterTarget(ctx context.Context, recipientID, token string) error

	// RemoveTarget detaches a device token and reports whether it was
	// actually present.
	RemoveTarget(ctx context.Context, recipientID, token string) (bool, error)
}
