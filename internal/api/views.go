package api

import (
	"dashboard-tokens/internal/helpers"
	"dashboard-tokens/internal/models"
	"embed"
	"html/template"
	"net/http"
	"time"
)

//go:embed views/*.html
var views embed.FS

var tokensTemplate = template.Must(template.ParseFS(views, "views/tokens.html"))

type tokenRow struct {
	ID             string
	Token          string
	Revealed       bool
	Active         bool
	LastAccessedAt *time.Time
}

type tokensPage struct {
	Flash string
	Rows  []tokenRow
}

// renderTokens shows every token masked, except revealID, whose one-time
// reveal was just claimed in the store.
func renderTokens(w http.ResponseWriter, tokens []models.AccessToken, message, revealID string) error {
	page := tokensPage{Flash: message, Rows: make([]tokenRow, 0, len(tokens))}

	for _, token := range tokens {
		row := tokenRow{
			ID:             token.ID,
			Token:          helpers.MaskToken(token.Token),
			Active:         token.Active(),
			LastAccessedAt: token.LastAccessedAt,
		}
		if revealID != "" && revealID == token.ID && token.Active() {
			row.Token = token.Token
			row.Revealed = true
		}
		page.Rows = append(page.Rows, row)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	return tokensTemplate.Execute(w, page)
}
