package services

import (
	"context"
	"dashboard-tokens/internal/api/validations"
	"dashboard-tokens/internal/metrics"
	"dashboard-tokens/internal/models"
	"net/http"
)

var tokenNotFoundError = &ErrorWithCode{
	Message: "Token not found",
	Code:    http.StatusNotFound,
}

var tokenActiveError = &ErrorWithCode{
	Message: "Token must be revoked before it can be deleted",
	Code:    http.StatusConflict,
}

var invalidTokenError = &ErrorWithCode{
	Message: "Invalid token",
	Code:    http.StatusUnauthorized,
}

var revokedTokenError = &ErrorWithCode{
	Message: "Token revoked",
	Code:    http.StatusUnauthorized,
}

func (s *Service) ListTokens(ctx context.Context, userID string) ([]models.AccessToken, error) {
	tokens, err := s.tokens.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// CreateToken stores a fresh token for the user. The returned record is the
// only place the caller sees the raw value in full.
func (s *Service) CreateToken(ctx context.Context, userID string) (*models.AccessToken, error) {
	raw, err := GenerateToken()
	if err != nil {
		return nil, err
	}

	token := &models.AccessToken{
		ID:        newTokenID(),
		Token:     raw,
		UserID:    userID,
		CreatedAt: s.now(),
	}

	if err := s.tokens.Insert(ctx, token); err != nil {
		return nil, err
	}

	s.metrics.Created.Inc()
	s.log.Info("personal access token created", "user_id", userID, "token_id", token.ID)
	return token, nil
}

// RevokeToken is idempotent: revoking a revoked token returns it unchanged.
func (s *Service) RevokeToken(ctx context.Context, userID, tokenID string) (*models.AccessToken, error) {
	changed, err := s.tokens.Revoke(ctx, tokenID, userID, s.now())
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.FindForUser(ctx, tokenID, userID)
	if err != nil {
		return nil, err
	}

	if token == nil {
		return nil, tokenNotFoundError
	}

	if changed {
		s.metrics.Revoked.Inc()
		s.log.Info("personal access token revoked", "user_id", userID, "token_id", tokenID)
	}
	return token, nil
}

func (s *Service) DeleteToken(ctx context.Context, userID, tokenID string) error {
	deleted, err := s.tokens.Delete(ctx, tokenID, userID)
	if err != nil {
		return err
	}

	if deleted {
		s.metrics.Deleted.Inc()
		s.log.Info("personal access token deleted", "user_id", userID, "token_id", tokenID)
		return nil
	}

	exists, err := s.tokens.FindForUser(ctx, tokenID, userID)
	if err != nil {
		return err
	}

	if exists == nil {
		return tokenNotFoundError
	}
	return tokenActiveError
}

// RevealToken hands out the raw value of a freshly created token a single
// time. It returns nil when the reveal was already claimed, the token is
// revoked, or it is not the caller's.
func (s *Service) RevealToken(ctx context.Context, userID, tokenID string) (*models.AccessToken, error) {
	claimed, err := s.tokens.Reveal(ctx, tokenID, userID, s.now())
	if err != nil {
		return nil, err
	}

	if !claimed {
		s.log.Warn("personal access token reveal refused", "user_id", userID, "token_id", tokenID)
		return nil, nil
	}

	return s.tokens.FindForUser(ctx, tokenID, userID)
}

// Authenticate resolves a raw bearer token to its owner and records the access.
func (s *Service) Authenticate(ctx context.Context, raw string) (string, error) {
	if err := (validations.BearerTokenValidator{Token: raw}).Validate(); err != nil {
		s.metrics.Authentication.WithLabelValues(metrics.AuthInvalid).Inc()
		return "", invalidTokenError
	}

	token, err := s.tokens.FindByToken(ctx, raw)
	if err != nil {
		s.metrics.Authentication.WithLabelValues(metrics.AuthError).Inc()
		return "", err
	}

	if token == nil {
		s.metrics.Authentication.WithLabelValues(metrics.AuthInvalid).Inc()
		return "", invalidTokenError
	}

	if !token.Active() {
		s.metrics.Authentication.WithLabelValues(metrics.AuthRevoked).Inc()
		return "", revokedTokenError
	}

	if err := s.tokens.Touch(ctx, token.ID, s.now()); err != nil {
		s.metrics.Authentication.WithLabelValues(metrics.AuthError).Inc()
		return "", err
	}

	s.metrics.Authentication.WithLabelValues(metrics.AuthOK).Inc()
	return token.UserID, nil
}
