package notification

import (
	"context"
)

// Dispatcher delivers one notification to one device target.
//
// Send is total: it never returns a Go error. Provider rejections, transport
// failures and context expiry are all folded into the DeliveryOutcome
// taxonomy, so this is the only layer that ever sees provider error shapes.
type Dispatcher interface {
	Send(ctx context.Context, target string, payload Payload) DeliveryOutcome
}
