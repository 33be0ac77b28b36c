package notification

import (
	"context"
)

// Service defines the notification delivery interface
type Service interface {
	// SendToRecipient resolves the recipient's device targets and dispatches
	// the payload to each of them. A missing recipient or an empty target
	// list yields a no_target result, not an error; errors are reserved for
	// token store unavailability.
	SendToRecipient(ctx context.Context, recipientID string, payload Payload) (FanoutResult, error)

	// SendDirect dispatches to a caller-supplied target, bypassing the token
	// store entirely.
	SendDirect(ctx context.Context, target string, payload Payload) DeliveryOutcome
}

// SuppressionList tracks device targets known to be permanently dead so that
// later fanouts can skip them without a provider round trip. A nil
// SuppressionList disables the check. Remove takes a target back off the
// list when a device re-registers it.
type SuppressionList interface {
	Contains(ctx context.Context, target string) (bool, error)
	Add(ctx context.Context, target string) error
	Remove(ctx context.Context, target string) error
}
