package repository

import (
	"context"
	"dashboard-tokens/internal/models"
	"database/sql"
	"errors"
	"fmt"
	"github.com/uptrace/bun"
	"log/slog"
	"time"
)

type Tokens struct {
	log *slog.Logger
	bun *bun.DB
}

func NewTokens(db *bun.DB, log *slog.Logger) *Tokens {
	return &Tokens{
		log: log,
		bun: db,
	}
}

func (t *Tokens) ListForUser(ctx context.Context, userID string) ([]models.AccessToken, error) {
	tokens := make([]models.AccessToken, 0)
	err := t.bun.NewSelect().
		Model(&tokens).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// FindForUser returns nil when the token does not exist or belongs to someone else.
func (t *Tokens) FindForUser(ctx context.Context, id, userID string) (*models.AccessToken, error) {
	var token models.AccessToken
	err := t.bun.NewSelect().
		Model(&token).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &token, nil
}

func (t *Tokens) FindByToken(ctx context.Context, raw string) (*models.AccessToken, error) {
	var token models.AccessToken
	err := t.bun.NewSelect().
		Model(&token).
		Where("token = ?", raw).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &token, nil
}

func (t *Tokens) Insert(ctx context.Context, token *models.AccessToken) error {
	if _, err := t.bun.NewInsert().Model(token).Exec(ctx); err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

// Revoke only touches active tokens, so revoked_at keeps its first value.
// It reports whether a row changed.
func (t *Tokens) Revoke(ctx context.Context, id, userID string, at time.Time) (bool, error) {
	res, err := t.bun.NewUpdate().
		Model((*models.AccessToken)(nil)).
		Set("revoked_at = ?", at).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Where("revoked_at IS NULL").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("revoke token %s: %w", id, err)
	}
	return affected(res)
}

// Delete only removes revoked tokens. It reports whether a row was removed.
func (t *Tokens) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := t.bun.NewDelete().
		Model((*models.AccessToken)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Where("revoked_at IS NOT NULL").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("delete token %s: %w", id, err)
	}
	return affected(res)
}

// Reveal claims the one-time display of an active token's raw value. Only the
// first call for a token changes a row.
func (t *Tokens) Reveal(ctx context.Context, id, userID string, at time.Time) (bool, error) {
	res, err := t.bun.NewUpdate().
		Model((*models.AccessToken)(nil)).
		Set("revealed_at = ?", at).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Where("revealed_at IS NULL").
		Where("revoked_at IS NULL").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("reveal token %s: %w", id, err)
	}
	return affected(res)
}

func (t *Tokens) Touch(ctx context.Context, id string, at time.Time) error {
	_, err := t.bun.NewUpdate().
		Model((*models.AccessToken)(nil)).
		Set("last_accessed_at = ?", at).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		t.log.Warn("cannot record token access", "id", id, "err", err)
		return err
	}
	return nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
