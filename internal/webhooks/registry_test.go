package webhooks

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclarationOrder(t *testing.T) {
	assert.Equal(t, []string{
		"issue.assigned",
		"issue.opened",
		"issuecomment.created",
		"star.created",
		"branch.new",
		"push",
	}, IDs())
	assert.Len(t, All(), len(declared))
}

func TestLookup(t *testing.T) {
	example, ok := Lookup("issue.assigned")
	require.True(t, ok)
	assert.Equal(t, "Issue assigned", example.Name)
	assert.Equal(t, "issues", example.Event)

	_, ok = Lookup("issue.deleted")
	assert.False(t, ok)

	_, ok = Lookup("")
	assert.False(t, ok)
}

func TestPayloadsRoundTripJSON(t *testing.T) {
	for _, example := range All() {
		t.Run(example.ID, func(t *testing.T) {
			var decoded any
			require.NoError(t, json.Unmarshal(example.Payload, &decoded))
			encoded, err := json.Marshal(decoded)
			require.NoError(t, err)
			assert.JSONEq(t, string(example.Payload), string(encoded))

			whole, err := json.Marshal(example)
			require.NoError(t, err)
			var back Example
			require.NoError(t, json.Unmarshal(whole, &back))
			assert.Equal(t, example.ID, back.ID)
			assert.Equal(t, example.Name, back.Name)
			assert.JSONEq(t, string(example.Payload), string(back.Payload))
		})
	}
}

func TestActionMatchesID(t *testing.T) {
	for _, example := range All() {
		t.Run(example.ID, func(t *testing.T) {
			require.NoError(t, example.Check())

			var payload map[string]any
			require.NoError(t, json.Unmarshal(example.Payload, &payload))

			_, action, dotted := strings.Cut(example.ID, ".")
			switch example.Event {
			case "push", "create":
				assert.NotContains(t, payload, "action")
			default:
				require.True(t, dotted)
				assert.Equal(t, action, payload["action"])
			}
		})
	}
}

func TestDecodeWithGitHubTypes(t *testing.T) {
	decode := func(id string) any {
		example, ok := Lookup(id)
		require.True(t, ok, id)
		event, err := example.Decode()
		require.NoError(t, err, id)
		return event
	}

	assigned, ok := decode("issue.assigned").(*github.IssuesEvent)
	require.True(t, ok)
	assert.Equal(t, "assigned", assigned.GetAction())
	assert.Equal(t, "matt-aitken", assigned.GetAssignee().GetLogin())
	assert.Equal(t, 4, assigned.GetIssue().GetNumber())

	opened, ok := decode("issue.opened").(*github.IssuesEvent)
	require.True(t, ok)
	assert.Equal(t, "opened", opened.GetAction())

	comment, ok := decode("issuecomment.created").(*github.IssueCommentEvent)
	require.True(t, ok)
	assert.Equal(t, "created", comment.GetAction())
	assert.NotEmpty(t, comment.GetComment().GetBody())

	star, ok := decode("star.created").(*github.StarEvent)
	require.True(t, ok)
	assert.Equal(t, "created", star.GetAction())
	assert.False(t, star.GetStarredAt().IsZero())

	branch, ok := decode("branch.new").(*github.CreateEvent)
	require.True(t, ok)
	assert.Equal(t, "branch", branch.GetRefType())
	assert.Equal(t, "test", branch.GetRef())

	push, ok := decode("push").(*github.PushEvent)
	require.True(t, ok)
	assert.Equal(t, "refs/heads/main", push.GetRef())
	assert.Equal(t, "triggerdotdev/empty", push.GetRepo().GetFullName())
	assert.NotEmpty(t, push.Commits)
}

func TestReturnedExamplesAreCopies(t *testing.T) {
	example, ok := Lookup("push")
	require.True(t, ok)
	original := string(example.Payload)

	example.Payload[0] = 'X'
	all := All()
	all[len(all)-1].Payload[1] = 'Y'

	again, _ := Lookup("push")
	assert.Equal(t, original, string(again.Payload))
}

func TestCheckRejectsInconsistentExamples(t *testing.T) {
	cases := map[string]Example{
		"wrong action": {
			ID: "issue.closed", Event: "issues",
			Payload: json.RawMessage(`{"action":"opened","sender":{"login":"a"},"repository":{"full_name":"o/r"}}`),
		},
		"wrong event header": {
			ID: "issue.opened", Event: "push",
			Payload: json.RawMessage(`{"action":"opened","sender":{"login":"a"},"repository":{"full_name":"o/r"}}`),
		},
		"push with action": {
			ID: "push", Event: "push",
			Payload: json.RawMessage(`{"action":"created","ref":"refs/heads/main","sender":{"login":"a"},"repository":{"full_name":"o/r"}}`),
		},
		"branch without ref type": {
			ID: "branch.new", Event: "create",
			Payload: json.RawMessage(`{"ref":"main","ref_type":"tag","sender":{"login":"a"},"repository":{"full_name":"o/r"}}`),
		},
		"no sender": {
			ID: "star.created", Event: "star",
			Payload: json.RawMessage(`{"action":"created","repository":{"full_name":"o/r"}}`),
		},
		"not json": {
			ID: "star.created", Event: "star",
			Payload: json.RawMessage(`{`),
		},
	}

	for name, example := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, example.Check())
		})
	}
}

func TestLoadFailsOnMissingFixture(t *testing.T) {
	_, err := load([]Example{{ID: "issue.transferred", Name: "Issue transferred", Event: "issues"}})
	assert.Error(t, err)
}
