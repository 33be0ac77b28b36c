package notification

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveFanoutStatus(t *testing.T) {
	tests := []struct {
		name      string
		targeted  int
		delivered int
		failed    int
		want      FanoutStatus
	}{
		{name: "no targets", targeted: 0, delivered: 0, failed: 0, want: FanoutNoTarget},
		{name: "all delivered", targeted: 3, delivered: 3, failed: 0, want: FanoutSuccess},
		{name: "single delivered", targeted: 1, delivered: 1, failed: 0, want: FanoutSuccess},
		{name: "all failed", targeted: 3, delivered: 0, failed: 3, want: FanoutFailure},
		{name: "single failed", targeted: 1, delivered: 0, failed: 1, want: FanoutFailure},
		{name: "mixed outcomes", targeted: 3, delivered: 2, failed: 1, want: FanoutPartialSuccess},
		{name: "one of each", targeted: 2, delivered: 1, failed: 1, want: FanoutPartialSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveFanoutStatus(tt.targeted, tt.delivered, tt.failed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeliveryOutcome_Delivered(t *testing.T) {
	assert.True(t, DeliveryOutcome{Status: StatusDelivered}.Delivered())
	assert.False(t, DeliveryOutcome{Status: StatusTargetInvalid}.Delivered())
	assert.False(t, DeliveryOutcome{Status: StatusInvalidPayload}.Delivered())
	assert.False(t, DeliveryOutcome{Status: StatusTransientError}.Delivered())
}

func TestDirectSendRequest_Validate(t *testing.T) {
	valid := DirectSendRequest{Token: "device-token-1", Title: "Hello", Body: "World"}
	assert.NoError(t, valid.Validate())

	missing := DirectSendRequest{}
	err := missing.Validate()
	assert.Error(t, err)

	longTitle := DirectSendRequest{Token: "t", Title: strings.Repeat("a", 256), Body: "b"}
	assert.Error(t, longTitle.Validate())
}

func TestRecipientSendRequest_Payload_Priority(t *testing.T) {
	normal := RecipientSendRequest{Title: "a", Body: "b"}
	assert.Equal(t, PriorityNormal, normal.Payload().Priority)

	high := RecipientSendRequest{Title: "a", Body: "b", HighPriority: true}
	assert.Equal(t, PriorityHigh, high.Payload().Priority)
}
