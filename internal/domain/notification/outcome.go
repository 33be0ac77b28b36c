package notification

// DeliveryStatus classifies the result of one dispatch attempt. The set is
// closed: every provider failure maps onto exactly one of these.
type DeliveryStatus string

const (
	// StatusDelivered means the provider accepted the message for the target.
	StatusDelivered DeliveryStatus = "delivered"
	// StatusTargetInvalid means the target is permanently unusable
	// (unregistered, unknown, or bound to a different sender).
	StatusTargetInvalid DeliveryStatus = "target_invalid"
	// StatusInvalidPayload means the message or target format was rejected.
	StatusInvalidPayload DeliveryStatus = "invalid_payload"
	// StatusTransientError covers timeouts, provider unavailability and
	// transport failures. Retrying later may succeed.
	StatusTransientError DeliveryStatus = "transient_error"
)

// DeliveryOutcome is the per-target result of a dispatch attempt.
type DeliveryOutcome struct {
	Target    string
	Status    DeliveryStatus
	MessageID string // provider message ID, set when delivered
	Detail    string // provider error detail, set otherwise
}

// Delivered reports whether the provider accepted the message.
func (o DeliveryOutcome) Delivered() bool {
	return o.Status == StatusDelivered
}
