package main

import (
	"dashboard-tokens/internal/cli"
	urfave "github.com/urfave/cli/v2"
	"log"
	"os"
	"time"
)

func userFlag() *urfave.StringFlag {
	return &urfave.StringFlag{
		Name:     "user",
		Aliases:  []string{"u"},
		Usage:    "Owner user id",
		Required: true,
	}
}

func idFlag() *urfave.StringFlag {
	return &urfave.StringFlag{
		Name:     "id",
		Usage:    "Token id",
		Required: true,
	}
}

func newApp() *urfave.App {
	return &urfave.App{
		Name:  "tokens",
		Usage: "Personal access token administration",
		Commands: []*urfave.Command{
			{
				Name:   "migrate",
				Usage:  "Apply database migrations",
				Action: cli.Migrate,
			},
			{
				Name:  "examples",
				Usage: "Browse the example GitHub webhook deliveries",
				Subcommands: []*urfave.Command{
					{
						Name:   "list",
						Usage:  "List example ids, events and names",
						Action: cli.ListExamples,
					},
					{
						Name:      "show",
						Usage:     "Print one example payload",
						ArgsUsage: "<id>",
						Action:    cli.ShowExample,
					},
					{
						Name:   "check",
						Usage:  "Verify every example decodes as its GitHub event",
						Action: cli.CheckExamples,
					},
				},
			},
			{
				Name:  "session",
				Usage: "Development sessions",
				Subcommands: []*urfave.Command{
					{
						Name:   "issue",
						Usage:  "Sign a session for a user",
						Action: cli.IssueSession,
						Flags: []urfave.Flag{
							userFlag(),
							&urfave.DurationFlag{
								Name:  "ttl",
								Usage: "Session lifetime",
								Value: 24 * time.Hour,
							},
						},
					},
				},
			},
			{
				Name:  "tokens",
				Usage: "Manage a user's personal access tokens",
				Subcommands: []*urfave.Command{
					{
						Name:   "list",
						Usage:  "List tokens, newest first",
						Action: cli.ListTokens,
						Flags:  []urfave.Flag{userFlag()},
					},
					{
						Name:   "create",
						Usage:  "Generate a token and print it once",
						Action: cli.CreateToken,
						Flags:  []urfave.Flag{userFlag()},
					},
					{
						Name:   "revoke",
						Usage:  "Revoke a token",
						Action: cli.RevokeToken,
						Flags:  []urfave.Flag{userFlag(), idFlag()},
					},
					{
						Name:   "delete",
						Usage:  "Delete a revoked token",
						Action: cli.DeleteToken,
						Flags:  []urfave.Flag{userFlag(), idFlag()},
					},
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
