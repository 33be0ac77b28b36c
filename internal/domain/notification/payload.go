package notification

// Priority controls how urgently the provider delivers to the device.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Payload is the provider-agnostic content of a single push notification.
type Payload struct {
	Title    string
	Body     string
	Data     map[string]string
	Priority Priority
}
