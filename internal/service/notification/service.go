package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mamacare-health/notify-backend-go/internal/domain/notification"
	"github.com/mamacare-health/notify-backend-go/internal/domain/recipient"
	"github.com/mamacare-health/notify-backend-go/internal/pkg/metrics"
)

// Config holds fanout configuration
type Config struct {
	Concurrency int           // default: 8
	SendTimeout time.Duration // default: 10 seconds
}

type service struct {
	tokens      recipient.Repository
	dispatcher  notification.Dispatcher
	suppression notification.SuppressionList
	config      Config
}

// NewNotificationService creates the fanout coordinator. suppression may be
// nil, which disables the known-dead-token check.
func NewNotificationService(tokens recipient.Repository, dispatcher notification.Dispatcher, suppression notification.SuppressionList, cfg Config) notification.Service {
	// Set defaults
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 8
	}
	if cfg.SendTimeout == 0 {
		cfg.SendTimeout = 10 * time.Second
	}

	return &service{
		tokens:      tokens,
		dispatcher:  dispatcher,
		suppression: suppression,
		config:      cfg,
	}
}

// SendToRecipient implements notification.Service.
func (s *service) SendToRecipient(ctx context.Context, recipientID string, payload notification.Payload) (notification.FanoutResult, error) {
	dispatchID := uuid.New().String()

	targets, err := s.tokens.ResolveTargets(ctx, recipientID)
	if err != nil {
		if errors.Is(err, recipient.ErrRecipientNotFound) {
			slog.Info("fanout skipped, recipient not found",
				"dispatch_id", dispatchID,
				"recipient_id", recipientID,
			)
			return s.finish(dispatchID, recipientID, notification.FanoutResult{Status: notification.FanoutNoTarget}), nil
		}
		return notification.FanoutResult{}, fmt.Errorf("failed to resolve targets: %w", err)
	}

	targets = s.filterSuppressed(ctx, targets)

	if len(targets) == 0 {
		return s.finish(dispatchID, recipientID, notification.FanoutResult{Status: notification.FanoutNoTarget}), nil
	}

	// Dispatch to every target with bounded concurrency. Workers never
	// return errors: each slot is filled with an outcome even when the
	// parent context dies mid-flight, so the join stays strict.
	outcomes := make([]notification.DeliveryOutcome, len(targets))
	g := new(errgroup.Group)
	g.SetLimit(s.config.Concurrency)

	for i, target := range targets {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, s.config.SendTimeout)
			defer cancel()

			start := time.Now()
			outcomes[i] = s.dispatcher.Send(callCtx, target, payload)
			metrics.ProviderRequestSeconds.Observe(time.Since(start).Seconds())
			return nil
		})
	}
	_ = g.Wait()

	result := notification.FanoutResult{TokensTargeted: len(targets)}
	for _, out := range outcomes {
		metrics.DeliveriesTotal.WithLabelValues(string(out.Status)).Inc()

		switch out.Status {
		case notification.StatusDelivered:
			result.SuccessCount++
		case notification.StatusTargetInvalid:
			result.FailureCount++
			if s.pruneTarget(ctx, recipientID, out.Target, dispatchID) {
				result.TokensRemoved++
			}
		default:
			result.FailureCount++
		}

		if !out.Delivered() {
			slog.Warn("dispatch failed",
				"dispatch_id", dispatchID,
				"recipient_id", recipientID,
				"status", out.Status,
				"detail", out.Detail,
			)
		}
	}

	result.Status = notification.DeriveFanoutStatus(result.TokensTargeted, result.SuccessCount, result.FailureCount)
	return s.finish(dispatchID, recipientID, result), nil
}

// SendDirect implements notification.Service.
func (s *service) SendDirect(ctx context.Context, target string, payload notification.Payload) notification.DeliveryOutcome {
	callCtx, cancel := context.WithTimeout(ctx, s.config.SendTimeout)
	defer cancel()

	start := time.Now()
	out := s.dispatcher.Send(callCtx, target, payload)
	metrics.ProviderRequestSeconds.Observe(time.Since(start).Seconds())
	metrics.DeliveriesTotal.WithLabelValues(string(out.Status)).Inc()

	if !out.Delivered() {
		slog.Warn("direct dispatch failed",
			"status", out.Status,
			"detail", out.Detail,
		)
	}
	return out
}

// filterSuppressed drops targets already known to be dead. Suppression
// errors count as "not suppressed": a degraded Redis never blocks a fanout.
func (s *service) filterSuppressed(ctx context.Context, targets []string) []string {
	if s.suppression == nil || len(targets) == 0 {
		return targets
	}

	kept := make([]string, 0, len(targets))
	for _, target := range targets {
		suppressed, err := s.suppression.Contains(ctx, target)
		if err != nil {
			slog.Warn("suppression check failed", "error", err)
			suppressed = false
		}
		if suppressed {
			slog.Info("skipping suppressed target", "target_suffix", tail(target))
			continue
		}
		kept = append(kept, target)
	}
	return kept
}

// pruneTarget drops a permanently-dead token from the store and records it
// on the suppression list. Failures are logged, never propagated: pruning
// is best-effort hygiene and must not disturb the fanout result.
func (s *service) pruneTarget(ctx context.Context, recipientID, target, dispatchID string) bool {
	removed, err := s.tokens.PruneTarget(ctx, recipientID, target)
	if err != nil {
		slog.Warn("failed to prune invalid token",
			"dispatch_id", dispatchID,
			"recipient_id", recipientID,
			"error", err,
		)
		return false
	}
	if removed {
		metrics.TokensPrunedTotal.Inc()
		if s.suppression != nil {
			if err := s.suppression.Add(ctx, target); err != nil {
				slog.Warn("failed to add token to suppression list",
					"dispatch_id", dispatchID,
					"error", err,
				)
			}
		}
	}
	return removed
}

func (s *service) finish(dispatchID, recipientID string, result notification.FanoutResult) notification.FanoutResult {
	metrics.FanoutsTotal.WithLabelValues(string(result.Status)).Inc()
	slog.Info("fanout complete",
		"dispatch_id", dispatchID,
		"recipient_id", recipientID,
		"status", result.Status,
		"success_count", result.SuccessCount,
		"failure_count", result.FailureCount,
		"tokens_targeted", result.TokensTargeted,
		"tokens_removed", result.TokensRemoved,
	)
	return result
}

// tail returns the last few characters of a token for log lines. Whole
// tokens never go to logs.
func tail(token string) string {
	if len(token) <= 8 {
		return token
	}
	return "..." + token[len(token)-8:]
}
