// Package session reads the dashboard session issued by the login flow and
// carries one-shot flash messages between a redirect and the next render.
package session

import (
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"net/http"
	"strings"
	"time"
)

var ErrUnauthenticated = errors.New("unauthenticated")

const flashCookie = "__flash"

const flashTTL = time.Minute

type Sessions struct {
	secret []byte
	cookie string
}

func New(secret, cookie string) *Sessions {
	return &Sessions{
		secret: []byte(secret),
		cookie: cookie,
	}
}

// CurrentUser returns the user id of the request's session, read from a
// bearer header or the session cookie.
func (s *Sessions) CurrentUser(r *http.Request) (string, error) {
	raw := ""
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		raw = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	} else if cookie, err := r.Cookie(s.cookie); err == nil {
		raw = strings.TrimSpace(cookie.Value)
	}

	if raw == "" {
		return "", ErrUnauthenticated
	}

	claims, err := s.decode(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("%w: userId is missing or of wrong type", ErrUnauthenticated)
	}
	return userID, nil
}

// Issue signs a session for userID. The login flow owns sessions in
// production, this is for tests and local development.
func (s *Sessions) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	})
	return claims.SignedString(s.secret)
}

func (s *Sessions) Cookie() string {
	return s.cookie
}

type Flash struct {
	Message string
	TokenID string
	// UserID is the session the flash was set for.
	UserID string
}

func (s *Sessions) SetFlash(w http.ResponseWriter, flash Flash) error {
	now := time.Now()
	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"flash":   flash.Message,
		"tokenId": flash.TokenID,
		"owner":   flash.UserID,
		"iat":     now.Unix(),
		"exp":     now.Add(flashTTL).Unix(),
	})
	value, err := claims.SignedString(s.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(flashTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// PopFlash returns the pending flash, if any, and clears it.
func (s *Sessions) PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	claims, err := s.decode(cookie.Value)
	if err != nil {
		return nil
	}

	message, _ := claims["flash"].(string)
	if message == "" {
		return nil
	}
	tokenID, _ := claims["tokenId"].(string)
	owner, _ := claims["owner"].(string)
	return &Flash{Message: message, TokenID: tokenID, UserID: owner}
}

func (s *Sessions) decode(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("error parsing token: %v", err)
	}
	return claims, nil
}
