package api

import (
	"context"
	"dashboard-tokens/internal/services"
	"github.com/google/uuid"
	"github.com/matheodrd/httphelper/handler"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type AuthError struct {
	Error string `json:"error"`
}

var missingHeader = &AuthError{Error: "Authorization Header is missing"}
var invalidSession = &AuthError{Error: "session is missing or expired"}

type ctxKey string

const userCtxKey ctxKey = "user"

func currentUser(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(userCtxKey).(string)
	return userID, ok && userID != ""
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// SessionMiddleware stops unauthenticated requests before any data access.
// Browsers are sent to the login page, API clients get a 401.
func (s *Server) SessionMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := s.sessions.CurrentUser(r)
			if err != nil {
				s.log.Debug("unauthenticated request", "path", r.URL.Path, "err", err)

				if !wantsJSON(r) {
					target := s.Config.LoginPath + "?redirectTo=" + url.QueryEscape(r.URL.RequestURI())
					http.Redirect(w, r, target, http.StatusFound)
					return
				}

				if err := handler.Encode(invalidSession, http.StatusUnauthorized, w); err != nil {
					s.log.Error("Error encoding response", "err", err)
					w.WriteHeader(http.StatusInternalServerError)
				}
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenAuthMiddleware authenticates API calls made with a personal access token.
func (s *Server) TokenAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				if err := handler.Encode(missingHeader, http.StatusUnauthorized, w); err != nil {
					s.log.Error("Error encoding response", "err", err)
					w.WriteHeader(http.StatusInternalServerError)
				}
				return
			}

			raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			userID, err := s.service.Authenticate(r.Context(), raw)
			if err != nil {
				ewc := services.DecodeErrorWithCode(err)
				if ewc == nil {
					s.log.Error("cannot authenticate personal access token", "err", err)
					w.WriteHeader(http.StatusInternalServerError)
					return
				}

				if err := handler.Encode(ewc, ewc.Code, w); err != nil {
					s.log.Error("Error encoding response", "err", err)
					w.WriteHeader(http.StatusInternalServerError)
				}
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MethodOverride lets HTML forms, which can only POST, send DELETE through a
// hidden _method field.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			if strings.EqualFold(r.PostFormValue("_method"), http.MethodDelete) {
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs each request with its latency and a request id.
func (s *Server) RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			attrs := []any{
				"request_id", requestID,
				"status", rec.status,
				"method", r.Method,
				"path", r.URL.Path,
				"latency", time.Since(start),
			}

			switch {
			case rec.status >= 500:
				s.log.Error("http_request", attrs...)
			case rec.status >= 400:
				s.log.Warn("http_request", attrs...)
			default:
				s.log.Info("http_request", attrs...)
			}
		})
	}
}
