package recipient

import "errors"

// Recipient domain errors
var (
	ErrRecipientNotFound = errors.New("recipient not found")
)
