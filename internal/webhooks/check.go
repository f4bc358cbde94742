package webhooks

import (
	"encoding/json"
	"fmt"
	"github.com/google/go-github/v66/github"
	"strings"
)

// event header GitHub sends for each event kind prefix
var kindEvents = map[string]string{
	"issue":        "issues",
	"issuecomment": "issue_comment",
	"star":         "star",
	"branch":       "create",
	"push":         "push",
}

type envelope struct {
	Action  *string `json:"action"`
	Ref     string  `json:"ref"`
	RefType string  `json:"ref_type"`
	Sender  *struct {
		Login string `json:"login"`
	} `json:"sender"`
	Repository *struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
}

// Check verifies that the payload agrees with the example's id and event.
func (e Example) Check() error {
	var env envelope
	if err := json.Unmarshal(e.Payload, &env); err != nil {
		return fmt.Errorf("webhook example %s: %w", e.ID, err)
	}

	kind, action, dotted := strings.Cut(e.ID, ".")
	if want, ok := kindEvents[kind]; !ok || want != e.Event {
		return fmt.Errorf("webhook example %s: event %q does not match kind %q", e.ID, e.Event, kind)
	}

	if env.Sender == nil || env.Sender.Login == "" {
		return fmt.Errorf("webhook example %s: sender is missing", e.ID)
	}
	if env.Repository == nil || env.Repository.FullName == "" {
		return fmt.Errorf("webhook example %s: repository is missing", e.ID)
	}

	switch {
	case e.Event == "push":
		if env.Action != nil {
			return fmt.Errorf("webhook example %s: push carries no action", e.ID)
		}
		if !strings.HasPrefix(env.Ref, "refs/") {
			return fmt.Errorf("webhook example %s: ref %q is not fully qualified", e.ID, env.Ref)
		}
	case e.Event == "create":
		if env.RefType != kind || env.Ref == "" {
			return fmt.Errorf("webhook example %s: ref_type %q does not match %q", e.ID, env.RefType, kind)
		}
	case !dotted:
		return fmt.Errorf("webhook example %s: id has no action", e.ID)
	case env.Action == nil || *env.Action != action:
		return fmt.Errorf("webhook example %s: payload action does not match %q", e.ID, action)
	}
	return nil
}

// Decode parses the payload into the go-github event type for its header,
// the same way a receiving handler would.
func (e Example) Decode() (any, error) {
	event, err := github.ParseWebHook(e.Event, e.Payload)
	if err != nil {
		return nil, fmt.Errorf("webhook example %s: %w", e.ID, err)
	}
	return event, nil
}
