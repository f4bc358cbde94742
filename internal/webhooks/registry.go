// Package webhooks holds example GitHub webhook deliveries, one per event
// kind the GitHub integration understands. The table is built once at init
// and never changes afterwards.
package webhooks

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"github.com/samber/lo"
)

//go:embed examples/*.json
var fixtures embed.FS

type Example struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Event is the X-GitHub-Event header GitHub sends with the payload.
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

var declared = []Example{
	{ID: "issue.assigned", Name: "Issue assigned", Event: "issues"},
	{ID: "issue.opened", Name: "Issue opened", Event: "issues"},
	{ID: "issuecomment.created", Name: "Issue comment created", Event: "issue_comment"},
	{ID: "star.created", Name: "Repo starred", Event: "star"},
	{ID: "branch.new", Name: "Branch created", Event: "create"},
	{ID: "push", Name: "Push", Event: "push"},
}

var (
	examples []Example
	byID     map[string]int
)

func init() {
	loaded, err := load(declared)
	if err != nil {
		panic(err)
	}

	examples = loaded
	byID = make(map[string]int, len(loaded))
	for i, example := range loaded {
		byID[example.ID] = i
	}
}

func load(entries []Example) ([]Example, error) {
	loaded := make([]Example, 0, len(entries))
	for _, entry := range entries {
		raw, err := fixtures.ReadFile("examples/" + entry.ID + ".json")
		if err != nil {
			return nil, fmt.Errorf("webhook example %s: %w", entry.ID, err)
		}

		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return nil, fmt.Errorf("webhook example %s: %w", entry.ID, err)
		}

		entry.Payload = compact.Bytes()
		if err := entry.Check(); err != nil {
			return nil, err
		}
		loaded = append(loaded, entry)
	}
	return loaded, nil
}

// Lookup returns the example registered under id.
func Lookup(id string) (Example, bool) {
	i, ok := byID[id]
	if !ok {
		return Example{}, false
	}
	return examples[i].clone(), true
}

// All returns every example in declaration order.
func All() []Example {
	return lo.Map(examples, func(example Example, _ int) Example {
		return example.clone()
	})
}

// IDs returns the registered event kinds in declaration order.
func IDs() []string {
	return lo.Map(examples, func(example Example, _ int) string {
		return example.ID
	})
}

func (e Example) clone() Example {
	e.Payload = bytes.Clone(e.Payload)
	return e
}
