package recipient

import (
	"context"
	"log/slog"

	"github.com/mamacare-health/notify-backend-go/internal/domain/notification"
	"github.com/mamacare-health/notify-backend-go/internal/domain/recipient"
)

type recipientServiceImpl struct {
	tokens      recipient.Repository
	suppression notification.SuppressionList
}

func NewRecipientService(tokens recipient.Repository, suppression notification.SuppressionList) recipient.RecipientService {
	return &recipientServiceImpl{
		tokens:      tokens,
		suppression: suppression,
	}
}

// RegisterTarget implements recipient.RecipientService.
func (s *recipientServiceImpl) RegisterTarget(ctx context.Context, recipientID, token string) error {
	if err := s.tokens.AddTarget(ctx, recipientID, token); err != nil {
		return err
	}

	// A re-registered token is live again, take it off the dead list.
	if s.suppression != nil {
		if err := s.suppression.Remove(ctx, token); err != nil {
			slog.Warn("failed to clear suppression for re-registered target",
				slog.String("recipient_id", recipientID),
				slog.String("error", err.Error()),
			)
		}
	}

	slog.Info("device target registered", slog.String("recipient_id", recipientID))
	return nil
}

// RemoveTarget implements recipient.RecipientService.
func (s *recipientServiceImpl) RemoveTarget(ctx context.Context, recipientID, token string) (bool, error) {
	removed, err := s.tokens.PruneTarget(ctx, recipientID, token)
	if err != nil {
		return false, err
	}

	if removed {
		slog.Info("device target removed", slog.String("recipient_id", recipientID))
	}
	return removed, nil
}
