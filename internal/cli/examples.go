// Package cli holds the actions of the operator command line.
package cli

import (
	"bytes"
	"dashboard-tokens/internal/webhooks"
	"encoding/json"
	"fmt"
	"github.com/TwiN/go-color"
	"github.com/urfave/cli/v2"
	"strings"
)

func ListExamples(c *cli.Context) error {
	for _, example := range webhooks.All() {
		fmt.Fprintf(c.App.Writer, color.Ize(color.Cyan, "%-22s")+" %-14s %s\n", example.ID, example.Event, example.Name)
	}
	return nil
}

func ShowExample(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return cli.Exit("Usage: examples show <id>", 1)
	}

	example, ok := webhooks.Lookup(id)
	if !ok {
		return cli.Exit(fmt.Sprintf("Unknown webhook example %q, known ids: %s", id, strings.Join(webhooks.IDs(), ", ")), 1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, example.Payload, "", "  "); err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, color.Ize(color.Cyan, "Example: ")+example.Name)
	fmt.Fprintln(c.App.Writer, color.Ize(color.Cyan, "Event:   ")+example.Event)
	fmt.Fprintln(c.App.Writer, pretty.String())
	return nil
}

// CheckExamples decodes every payload with the GitHub event types and fails
// on the first inconsistent one.
func CheckExamples(c *cli.Context) error {
	failed := 0
	for _, example := range webhooks.All() {
		err := example.Check()
		if err == nil {
			_, err = example.Decode()
		}

		if err != nil {
			failed++
			fmt.Fprintf(c.App.Writer, "%s %s: %v\n", color.InRed("✗"), example.ID, err)
			continue
		}
		fmt.Fprintf(c.App.Writer, "%s %s\n", color.InGreen("✓"), example.ID)
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d webhook example(s) failed", failed), 1)
	}
	return nil
}
