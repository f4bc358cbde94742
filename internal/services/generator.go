package services

import (
	"dashboard-tokens/internal/models"
	"fmt"
	"github.com/lucsky/cuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	tokenAlphabet = "1234567890abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	tokenLength   = 20
)

// GenerateToken draws from crypto/rand, every alphabet symbol equally likely.
func GenerateToken() (string, error) {
	id, err := gonanoid.Generate(tokenAlphabet, tokenLength)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return models.TokenPrefix + id, nil
}

func newTokenID() string {
	return cuid.New()
}
