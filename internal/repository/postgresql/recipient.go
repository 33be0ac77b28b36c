package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mamacare-health/notify-backend-go/internal/domain/recipient"
	"github.com/mamacare-health/notify-backend-go/internal/pkg/database"
)

type recipientRepository struct {
	db *database.DB
}

// NewRecipientRepository creates a new recipient repository
func NewRecipientRepository(db *database.DB) recipient.Repository {
	return &recipientRepository{db: db}
}

// decodeTargets decodes the stored device_tokens column. Legacy rows may
// hold a bare JSON string instead of an array, and arrays may carry
// non-string elements; anything that is not a non-empty string is dropped.
func decodeTargets(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []interface{}
	if err := json.Unmarshal(raw, &list); err == nil {
		targets := make([]string, 0, len(list))
		for _, v := range list {
			if s, ok := v.(string); ok && s != "" {
				targets = append(targets, s)
			}
		}
		return targets
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}

	return nil
}

// ResolveTargets returns the dispatchable device targets for a recipient
func (r *recipientRepository) ResolveTargets(ctx context.Context, recipientID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT device_tokens
		FROM recipients
		WHERE id = $1
	`

	var raw []byte
	err := q.QueryRow(ctx, query, recipientID).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, recipient.ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to resolve targets: %w", database.ClassifyError(err))
	}

	return decodeTargets(raw), nil
}

// PruneTarget removes target from the recipient's stored list inside a
// transaction and reports whether anything was removed. The rewrite also
// drops duplicates and empty strings so legacy rows converge to the
// duplicate-free invariant.
func (r *recipientRepository) PruneTarget(ctx context.Context, recipientID, target string) (bool, error) {
	var removed bool

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		current, err := r.loadTargetsForUpdate(txCtx, recipientID)
		if err != nil {
			return err
		}

		seen := make(map[string]bool, len(current))
		kept := make([]string, 0, len(current))
		for _, t := range current {
			if t == target {
				removed = true
				continue
			}
			if seen[t] {
				continue
			}
			seen[t] = true
			kept = append(kept, t)
		}

		if !removed {
			return nil
		}

		return r.writeTargets(txCtx, recipientID, kept)
	})
	if err != nil {
		return false, err
	}

	return removed, nil
}

// AddTarget registers a device target, ignoring duplicates
func (r *recipientRepository) AddTarget(ctx context.Context, recipientID, target string) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		current, err := r.loadTargetsForUpdate(txCtx, recipientID)
		if err != nil {
			return err
		}

		for _, t := range current {
			if t == target {
				return nil
			}
		}

		return r.writeTargets(txCtx, recipientID, append(current, target))
	})
}

func (r *recipientRepository) loadTargetsForUpdate(ctx context.Context, recipientID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT device_tokens
		FROM recipients
		WHERE id = $1
		FOR UPDATE
	`

	var raw []byte
	err := q.QueryRow(ctx, query, recipientID).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, recipient.ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to load targets: %w", database.ClassifyError(err))
	}

	return decodeTargets(raw), nil
}

// writeTargets persists the list, storing NULL instead of an empty array so
// a cleared field reads back the same as one that was never set.
func (r *recipientRepository) writeTargets(ctx context.Context, recipientID string, targets []string) error {
	q := GetQuerier(ctx, r.db)

	var value interface{}
	if len(targets) > 0 {
		raw, err := json.Marshal(targets)
		if err != nil {
			return fmt.Errorf("failed to marshal targets: %w", err)
		}
		value = raw
	}

	query := `
		UPDATE recipients
		SET device_tokens = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query, recipientID, value)
	if err != nil {
		return fmt.Errorf("failed to write targets: %w", database.ClassifyError(err))
	}
	if result.RowsAffected() == 0 {
		return recipient.ErrRecipientNotFound
	}

	return nil
}
