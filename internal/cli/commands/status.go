package commands

import (
	"context"
	"fmt"
	"net/url"

	"Pokedex/internal/cli/bootstrap"
	"Pokedex/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Check that the catalog API answers" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	c := bootstrap.NewClient(cfg, logger)
	page, err := c.ListPage(ctx, 0, 1)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "API:    %s\n", c.BaseURL())
	fmt.Fprintf(Out, "Status: ok (first page: %d item(s), more: %t)\n", len(page.Items), page.HasMore)
	fmt.Fprintf(Out, "Mirror: %s\n", redactDSN(cfg.MirrorDSN))
	return nil
}

// redactDSN скрывает пароль в postgres URL.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}

func init() { RegisterCmd(statusCmd{}) }
