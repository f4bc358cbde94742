package api

import (
	"context"
	"dashboard-tokens/internal/config"
	"dashboard-tokens/internal/metrics"
	"dashboard-tokens/internal/models"
	"dashboard-tokens/internal/services"
	"dashboard-tokens/internal/session"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

// untouchableStore counts every call so tests can prove a request was
// stopped before the store.
type untouchableStore struct {
	calls atomic.Int32
}

func (s *untouchableStore) ListForUser(context.Context, string) ([]models.AccessToken, error) {
	s.calls.Add(1)
	return nil, nil
}

func (s *untouchableStore) FindForUser(context.Context, string, string) (*models.AccessToken, error) {
	s.calls.Add(1)
	return nil, nil
}

func (s *untouchableStore) FindByToken(context.Context, string) (*models.AccessToken, error) {
	s.calls.Add(1)
	return nil, nil
}

func (s *untouchableStore) Insert(context.Context, *models.AccessToken) error {
	s.calls.Add(1)
	return nil
}

func (s *untouchableStore) Revoke(context.Context, string, string, time.Time) (bool, error) {
	s.calls.Add(1)
	return false, nil
}

func (s *untouchableStore) Delete(context.Context, string, string) (bool, error) {
	s.calls.Add(1)
	return false, nil
}

func (s *untouchableStore) Reveal(context.Context, string, string, time.Time) (bool, error) {
	s.calls.Add(1)
	return false, nil
}

func (s *untouchableStore) Touch(context.Context, string, time.Time) error {
	s.calls.Add(1)
	return nil
}

func TestUnauthenticatedRequestsNeverReachTheStore(t *testing.T) {
	store := &untouchableStore{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	service := services.NewService(log, store, metrics.New(reg))
	conf := &config.Config{LoginPath: "/login"}
	routes := NewServer(conf, log, service, session.New("test-secret", "__session"), reg).Routes()

	id := "c" + strings.Repeat("a", 24)
	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/personal-access-tokens", nil),
		httptest.NewRequest(http.MethodPost, "/personal-access-tokens", nil),
		httptest.NewRequest(http.MethodDelete, "/personal-access-tokens/"+id, nil),
		httptest.NewRequest(http.MethodDelete, "/personal-access-tokens/"+id+"/record", nil),
	}

	expired, err := session.New("test-secret", "__session").Issue("user-1", -time.Minute)
	assert.NoError(t, err)
	withExpired := httptest.NewRequest(http.MethodGet, "/personal-access-tokens", nil)
	withExpired.AddCookie(&http.Cookie{Name: "__session", Value: expired})
	requests = append(requests, withExpired)

	otherSecret, err := session.New("other-secret", "__session").Issue("user-1", time.Hour)
	assert.NoError(t, err)
	forged := httptest.NewRequest(http.MethodGet, "/personal-access-tokens", nil)
	forged.Header.Set("Authorization", "Bearer "+otherSecret)
	requests = append(requests, forged)

	for _, r := range requests {
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusFound, rec.Code, r.Method+" "+r.URL.Path)
	}

	assert.Zero(t, store.calls.Load())
}

func TestMethodOverride(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Method
	})

	form := url.Values{"_method": {"delete"}}
	r := httptest.NewRequest(http.MethodPost, "/personal-access-tokens/x", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	MethodOverride(next).ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, http.MethodDelete, seen)

	form = url.Values{"_method": {"PATCH"}}
	r = httptest.NewRequest(http.MethodPost, "/personal-access-tokens/x", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	MethodOverride(next).ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, http.MethodPost, seen)

	r = httptest.NewRequest(http.MethodGet, "/personal-access-tokens?_method=DELETE", nil)
	MethodOverride(next).ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, http.MethodGet, seen)
}
