package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	AuthOK      = "ok"
	AuthInvalid = "invalid"
	AuthRevoked = "revoked"
	AuthError   = "error"
)

type Metrics struct {
	Created        prometheus.Counter
	Revoked        prometheus.Counter
	Deleted        prometheus.Counter
	Authentication *prometheus.CounterVec
}

// New registers the token counters on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Created: factory.NewCounter(prometheus.CounterOpts{
			Name: "pat_tokens_created_total",
			Help: "Personal access tokens generated",
		}),
		Revoked: factory.NewCounter(prometheus.CounterOpts{
			Name: "pat_tokens_revoked_total",
			Help: "Personal access tokens revoked",
		}),
		Deleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "pat_tokens_deleted_total",
			Help: "Revoked personal access tokens permanently deleted",
		}),
		Authentication: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pat_authentications_total",
			Help: "Bearer authentications with a personal access token, by result",
		}, []string{"result"}),
	}
}
