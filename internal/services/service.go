package services

import (
	"context"
	"dashboard-tokens/internal/metrics"
	"dashboard-tokens/internal/models"
	"errors"
	"log/slog"
	"time"
)

// TokenStore is the persistence the token manager needs. Every mutation
// that takes a userID must be scoped to that owner.
type TokenStore interface {
	ListForUser(ctx context.Context, userID string) ([]models.AccessToken, error)
	FindForUser(ctx context.Context, id, userID string) (*models.AccessToken, error)
	FindByToken(ctx context.Context, raw string) (*models.AccessToken, error)
	Insert(ctx context.Context, token *models.AccessToken) error
	Revoke(ctx context.Context, id, userID string, at time.Time) (bool, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
	Reveal(ctx context.Context, id, userID string, at time.Time) (bool, error)
	Touch(ctx context.Context, id string, at time.Time) error
}

type Service struct {
	log     *slog.Logger
	tokens  TokenStore
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(log *slog.Logger, tokens TokenStore, metrics *metrics.Metrics) *Service {
	return &Service{
		log:     log,
		tokens:  tokens,
		metrics: metrics,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

type ErrorWithCode struct {
	Message string `json:"error"`
	Code    int    `json:"-"`
}

func (e ErrorWithCode) Error() string {
	return e.Message
}

func DecodeErrorWithCode(err error) *ErrorWithCode {
	var ewc *ErrorWithCode
	if errors.As(err, &ewc) {
		return ewc
	}
	return nil
}
