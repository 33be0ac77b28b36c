package recipient

import (
	"context"
)

// Repository is the device-token store. Stored lists never contain
// duplicates or empty strings after a successful write; implementations
// clear the underlying field instead of persisting an empty list.
type Repository interface {
	// ResolveTargets returns the dispatchable device targets for a
	// recipient. Entries that are not non-empty strings are silently
	// dropped. A recipient without targets resolves to an empty slice;
	// a missing recipient returns ErrRecipientNotFound.
	ResolveTargets(ctx context.Context, recipientID string) ([]string, error)

	// PruneTarget removes target from the recipient's stored list and
	// reports whether anything was removed. Pruning a target that is not
	// in the list is a no-op.
	PruneTarget(ctx context.Context, recipientID, target string) (bool, error)

	// AddTarget registers a device target for the recipient. Adding a
	// target that is already registered is a no-op.
	AddTarget(ctx context.Context, recipientID, target string) error
}
