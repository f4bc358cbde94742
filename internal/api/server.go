package api

import (
	"context"
	"dashboard-tokens/internal/config"
	"dashboard-tokens/internal/services"
	"dashboard-tokens/internal/session"
	"errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"
	"net/http"
	"time"
)

const tokensPath = "/personal-access-tokens"

type Server struct {
	Config   *config.Config
	log      *slog.Logger
	service  *services.Service
	sessions *session.Sessions
	limiter  *RateLimiter
	gatherer prometheus.Gatherer
}

func NewServer(config *config.Config, log *slog.Logger, service *services.Service, sessions *session.Sessions, gatherer prometheus.Gatherer) *Server {
	return &Server{
		Config:   config,
		log:      log,
		service:  service,
		sessions: sessions,
		limiter:  NewRateLimiter(config.CreateRateLimitRPM),
		gatherer: gatherer,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET "+tokensPath, s.SessionMiddleware()(s.ListTokens()))
	mux.Handle("POST "+tokensPath, s.SessionMiddleware()(s.limiter.Middleware()(s.CreateToken())))
	mux.Handle("DELETE "+tokensPath+"/{id}", s.SessionMiddleware()(s.RevokeToken()))
	mux.Handle("DELETE "+tokensPath+"/{id}/record", s.SessionMiddleware()(s.DeleteToken()))

	mux.Handle("GET /api/v1/whoami", s.TokenAuthMiddleware()(s.WhoAmI()))

	mux.Handle("GET /webhook-examples", s.ListWebhookExamples())
	mux.Handle("GET /webhook-examples/{id}", s.GetWebhookExample())

	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	return s.RequestLogger()(MethodOverride(mux))
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              ":" + s.Config.PORT,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting server on port: " + server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
