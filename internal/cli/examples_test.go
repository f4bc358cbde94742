package cli

import (
	"bytes"
	"dashboard-tokens/internal/session"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestApp(out *bytes.Buffer) *cli.App {
	return &cli.App{
		Name:           "tokens",
		Writer:         out,
		ErrWriter:      out,
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{Name: "list", Action: ListExamples},
			{Name: "show", Action: ShowExample},
			{Name: "check", Action: CheckExamples},
			{
				Name:   "issue",
				Action: IssueSession,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Required: true},
					&cli.DurationFlag{Name: "ttl", Value: time.Hour},
				},
			},
		},
	}
}

func TestListExamples(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, newTestApp(&out).Run([]string{"tokens", "list"}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "issue.assigned")
	assert.Contains(t, lines[5], "push")
}

func TestShowExample(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, newTestApp(&out).Run([]string{"tokens", "show", "star.created"}))
	assert.Contains(t, out.String(), `"action": "created"`)

	out.Reset()
	err := newTestApp(&out).Run([]string{"tokens", "show", "star.deleted"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown webhook example")
	assert.Contains(t, err.Error(), "branch.new")

	out.Reset()
	require.Error(t, newTestApp(&out).Run([]string{"tokens", "show"}))
}

func TestCheckExamples(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, newTestApp(&out).Run([]string{"tokens", "check"}))
	assert.Equal(t, 6, strings.Count(out.String(), "✓"))
}

func TestIssueSession(t *testing.T) {
	t.Setenv("SESSION_SECRET", "cli-secret")
	t.Setenv("SESSION_COOKIE", "__dev_session")

	var out bytes.Buffer
	require.NoError(t, newTestApp(&out).Run([]string{"tokens", "issue", "--user", "user-7"}))

	var cookie string
	for _, line := range strings.Split(out.String(), "\n") {
		if _, value, ok := strings.Cut(line, "__dev_session="); ok {
			cookie = strings.TrimSpace(value)
		}
	}
	require.NotEmpty(t, cookie)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "__dev_session", Value: cookie})
	userID, err := session.New("cli-secret", "__dev_session").CurrentUser(r)
	require.NoError(t, err)
	assert.Equal(t, "user-7", userID)
}
