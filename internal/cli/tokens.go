package cli

import (
	"context"
	"dashboard-tokens/internal/config"
	"dashboard-tokens/internal/helpers"
	"dashboard-tokens/internal/metrics"
	"dashboard-tokens/internal/repository"
	"dashboard-tokens/internal/services"
	"dashboard-tokens/internal/session"
	"dashboard-tokens/migrations"
	"fmt"
	"github.com/TwiN/go-color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
	"log/slog"
	"time"
)

type env struct {
	conf *config.Config
	log  *slog.Logger
	db   *bun.DB
}

func open() (*env, error) {
	conf, err := config.New()
	if err != nil {
		return nil, err
	}

	db, err := repository.Open(conf.DB_DRIVER, conf.DB_URL)
	if err != nil {
		return nil, err
	}

	return &env{conf: conf, log: conf.Logger(), db: db}, nil
}

func (e *env) close() {
	if err := e.db.Close(); err != nil {
		e.log.Error("cannot close database", "err", err)
	}
}

func (e *env) service() *services.Service {
	return services.NewService(e.log, repository.NewTokens(e.db, e.log), metrics.New(prometheus.NewRegistry()))
}

func Migrate(c *cli.Context) error {
	e, err := open()
	if err != nil {
		return err
	}
	defer e.close()

	return migrations.Migrate(e.db.DB, e.conf.DB_DRIVER, e.log)
}

func IssueSession(c *cli.Context) error {
	conf, err := config.New()
	if err != nil {
		return err
	}

	sessions := session.New(conf.SessionSecret, conf.SessionCookie)
	raw, err := sessions.Issue(c.String("user"), c.Duration("ttl"))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, color.Ize(color.Cyan, "Cookie: ")+sessions.Cookie()+"="+raw)
	fmt.Fprintln(c.App.Writer, color.Ize(color.Cyan, "Bearer: ")+raw)
	return nil
}

func ListTokens(c *cli.Context) error {
	e, err := open()
	if err != nil {
		return err
	}
	defer e.close()

	tokens, err := e.service().ListTokens(c.Context, c.String("user"))
	if err != nil {
		return err
	}

	if len(tokens) == 0 {
		fmt.Fprintln(c.App.Writer, color.Ize(color.Gray, "No generated tokens"))
		return nil
	}

	for _, token := range tokens {
		status := color.InGreen("active")
		if !token.Active() {
			status = color.InRed("revoked")
		}

		accessed := "never accessed"
		if token.LastAccessedAt != nil {
			accessed = token.LastAccessedAt.Format(time.RFC3339)
		}

		fmt.Fprintf(c.App.Writer, color.Ize(color.Cyan, "%s")+"  %s  %s  %s\n", token.ID, helpers.MaskToken(token.Token), status, accessed)
	}
	return nil
}

func CreateToken(c *cli.Context) error {
	e, err := open()
	if err != nil {
		return err
	}
	defer e.close()

	token, err := e.service().CreateToken(c.Context, c.String("user"))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, color.Ize(color.Cyan, "ID:    ")+token.ID)
	fmt.Fprintln(c.App.Writer, color.Ize(color.Cyan, "Token: ")+color.InBold(token.Token))
	fmt.Fprintln(c.App.Writer, color.InYellow("Copy this token now. It will not be shown again."))
	return nil
}

func RevokeToken(c *cli.Context) error {
	return withToken(c, func(ctx context.Context, service *services.Service, userID, tokenID string) error {
		if _, err := service.RevokeToken(ctx, userID, tokenID); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Revoked %s\n", color.InRed(tokenID))
		return nil
	})
}

func DeleteToken(c *cli.Context) error {
	return withToken(c, func(ctx context.Context, service *services.Service, userID, tokenID string) error {
		if err := service.DeleteToken(ctx, userID, tokenID); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Deleted %s\n", color.InRed(tokenID))
		return nil
	})
}

func withToken(c *cli.Context, fn func(ctx context.Context, service *services.Service, userID, tokenID string) error) error {
	e, err := open()
	if err != nil {
		return err
	}
	defer e.close()

	err = fn(c.Context, e.service(), c.String("user"), c.String("id"))
	if ewc := services.DecodeErrorWithCode(err); ewc != nil {
		return cli.Exit(ewc.Message, 1)
	}
	return err
}
