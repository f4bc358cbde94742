package models

import (
	"github.com/uptrace/bun"
	"time"
)

const TokenPrefix = "tr_pat_"

type AccessToken struct {
	bun.BaseModel `bun:"table:personal_access_tokens"`

	ID             string     `bun:"id,pk"`
	Token          string     `bun:"token,unique,notnull"`
	UserID         string     `bun:"user_id,notnull"`
	CreatedAt      time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	LastAccessedAt *time.Time `bun:"last_accessed_at"`
	RevokedAt      *time.Time `bun:"revoked_at"`

	// RevealedAt is set once the dashboard has shown the raw value.
	RevealedAt *time.Time `bun:"revealed_at"`
}

// Active reports whether the token can still authenticate.
func (t *AccessToken) Active() bool {
	return t.RevokedAt == nil
}
