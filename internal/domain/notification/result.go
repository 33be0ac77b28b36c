package notification

// FanoutStatus summarizes a multi-target dispatch.
type FanoutStatus string

const (
	FanoutNoTarget       FanoutStatus = "no_target"
	FanoutSuccess        FanoutStatus = "success"
	FanoutFailure        FanoutStatus = "failure"
	FanoutPartialSuccess FanoutStatus = "partial_success"
)

// FanoutResult aggregates the per-target outcomes of one fanout.
type FanoutResult struct {
	Status         FanoutStatus `json:"status"`
	SuccessCount   int          `json:"success_count"`
	FailureCount   int          `json:"failure_count"`
	TokensTargeted int          `json:"tokens_targeted"`
	TokensRemoved  int          `json:"tokens_removed"`
}

// DeriveFanoutStatus computes the aggregate status from the delivery counts.
// It is a pure function of the counts so the mapping stays testable in one
// place: zero targets is no_target, zero failures is success, zero
// deliveries is failure, anything else is partial_success.
func DeriveFanoutStatus(targeted, delivered, failed int) FanoutStatus {
	switch {
	case targeted == 0:
		return FanoutNoTarget
	case failed == 0:
		return FanoutSuccess
	case delivered == 0:
		return FanoutFailure
	default:
		return FanoutPartialSuccess
	}
}
