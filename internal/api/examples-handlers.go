package api

import (
	"dashboard-tokens/internal/api/validations"
	"dashboard-tokens/internal/webhooks"
	"github.com/matheodrd/httphelper/handler"
	"github.com/samber/lo"
	"net/http"
)

type WebhookExampleSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Event string `json:"event"`
}

var exampleNotFound = &AuthError{Error: "Webhook example not found"}

func (s *Server) ListWebhookExamples() http.HandlerFunc {
	return handler.Handler(func(w http.ResponseWriter, r *http.Request) error {
		summaries := lo.Map(webhooks.All(), func(example webhooks.Example, _ int) WebhookExampleSummary {
			return WebhookExampleSummary{ID: example.ID, Name: example.Name, Event: example.Event}
		})
		return handler.Encode[[]WebhookExampleSummary](summaries, http.StatusOK, w)
	})
}

func (s *Server) GetWebhookExample() http.HandlerFunc {
	return handler.Handler(func(w http.ResponseWriter, r *http.Request) error {
		id := validations.ExampleIDValidator{ID: r.PathValue("id")}
		if err := id.Validate(); err != nil {
			if validationErrors := decodeValidationError(err); validationErrors != nil {
				return buildValidationErrors(w, validationErrors)
			}
			return err
		}

		example, ok := webhooks.Lookup(id.ID)
		if !ok {
			return handler.Encode(exampleNotFound, http.StatusNotFound, w)
		}

		return handler.Encode[webhooks.Example](example, http.StatusOK, w)
	})
}
