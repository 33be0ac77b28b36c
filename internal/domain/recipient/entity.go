package recipient

import (
	"time"
)

// Recipient represents a notifiable user profile. DeviceTokens holds the
// push registration tokens of every device the recipient is signed in on.
type Recipient struct {
	ID           string
	FullName     *string
	DeviceTokens []string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
