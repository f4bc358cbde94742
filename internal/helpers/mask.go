package helpers

import (
	"strings"
)

const maskVisible = 4

const maskFill = "••••••••"

// MaskToken keeps the prefix and the first few characters of a secret.
func MaskToken(token string) string {
	prefix := ""
	if i := strings.LastIndex(token, "_"); i >= 0 {
		prefix, token = token[:i+1], token[i+1:]
	}

	if len(token) <= maskVisible {
		return prefix + maskFill
	}
	return prefix + token[:maskVisible] + maskFill
}
