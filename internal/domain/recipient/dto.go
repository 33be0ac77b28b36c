package recipient

import (
	"github.com/mamacare-health/notify-backend-go/internal/pkg/validator"
)

// ============= Request DTOs =============

// RegisterTargetRequest represents a request to attach a device token to a
// recipient profile
type RegisterTargetRequest struct {
	Token string `json:"token"`
}

func (r *RegisterTargetRequest) Validate() error {
	return validateTargetToken(r.Token)
}

// RemoveTargetRequest represents a request to detach a device token from a
// recipient profile
type RemoveTargetRequest struct {
	Token string `json:"token"`
}

func (r *RemoveTargetRequest) Validate() error {
	return validateTargetToken(r.Token)
}

func validateTargetToken(token string) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token is required",
		})
	}
	if len(token) > validator.MaxTargetLength {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token exceeds the maximum length",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ============= Response DTOs =============

// RemoveTargetResponse reports whether the token was actually removed
type RemoveTargetResponse struct {
	Removed bool `json:"removed"`
}
