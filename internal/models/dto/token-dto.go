package dto

import (
	"dashboard-tokens/internal/helpers"
	"dashboard-tokens/internal/models"
	"github.com/samber/lo"
	"time"
)

type AccessTokenDTO struct {
	ID             string     `json:"id"`
	Token          string     `json:"token"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
	LastAccessedAt *time.Time `json:"last_accessed_at"`
	RevokedAt      *time.Time `json:"revoked_at"`
}

// AccessTokenToDTO never carries the raw value, only its masked form.
func AccessTokenToDTO(token *models.AccessToken) *AccessTokenDTO {
	return &AccessTokenDTO{
		ID:             token.ID,
		Token:          helpers.MaskToken(token.Token),
		Active:         token.Active(),
		CreatedAt:      token.CreatedAt,
		LastAccessedAt: token.LastAccessedAt,
		RevokedAt:      token.RevokedAt,
	}
}

func AccessTokensToDTO(tokens []models.AccessToken) []*AccessTokenDTO {
	return lo.Map(tokens, func(token models.AccessToken, _ int) *AccessTokenDTO {
		return AccessTokenToDTO(&token)
	})
}

type CreatedAccessTokenDTO struct {
	*AccessTokenDTO
	RawToken string `json:"raw_token"`
}

func CreatedAccessTokenToDTO(token *models.AccessToken) *CreatedAccessTokenDTO {
	return &CreatedAccessTokenDTO{
		AccessTokenDTO: AccessTokenToDTO(token),
		RawToken:       token.Token,
	}
}
