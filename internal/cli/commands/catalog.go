package commands

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"Pokedex/internal/cli/bootstrap"
	"Pokedex/internal/cli/printer"
	"Pokedex/internal/config"
)

type listCmd struct{}

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "Show one catalog page" }
func (listCmd) Usage() string       { return "list [offset] [limit]" }

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 2 {
		return ErrUsage
	}
	offset, limit := 0, cfg.PageSize
	if limit <= 0 {
		limit = config.DefaultPageSize
	}
	var err error
	if len(args) > 0 {
		if offset, err = strconv.Atoi(args[0]); err != nil || offset < 0 {
			return ErrUsage
		}
	}
	if len(args) > 1 {
		if limit, err = strconv.Atoi(args[1]); err != nil || limit <= 0 {
			return ErrUsage
		}
	}

	d, done := bootstrap.Open(cfg, logger)
	defer done()
	page, err := d.Client.ListPage(ctx, offset, limit)
	if err != nil {
		return err
	}
	// отметки избранного необязательны, без них список всё равно выводим
	if marks, err := d.Favorites.Marks(ctx); err == nil {
		for i := range page.Items {
			page.Items[i].Mark = marks[page.Items[i].Key()]
		}
	} else {
		logger.Warnw("favorite marks unavailable", "error", err)
	}

	printer.Title(Out, fmt.Sprintf("Pokemon %d-%d", offset+1, offset+len(page.Items)), len(page.Items))
	printer.Items(Out, page.Items)
	if page.HasMore {
		fmt.Fprintf(Out, "next: pdcli list %d %d\n", offset+limit, limit)
	}
	return nil
}

type searchCmd struct{}

func (searchCmd) Name() string        { return "search" }
func (searchCmd) Description() string { return "Search pokemon by name" }
func (searchCmd) Usage() string       { return "search <name>" }

func (searchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	q := strings.TrimSpace(strings.Join(args, " "))
	if q == "" {
		return ErrUsage
	}
	c := bootstrap.NewClient(cfg, logger)
	items, err := c.Search(ctx, q)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintf(Out, "No pokemon found for %q\n", q)
		return nil
	}
	printer.Title(Out, "Results for "+strconv.Quote(q), len(items))
	printer.Items(Out, items)
	return nil
}

type showCmd struct{}

func (showCmd) Name() string        { return "show" }
func (showCmd) Description() string { return "Show pokemon details" }
func (showCmd) Usage() string       { return "show [-yaml] <name|id>" }

func (showCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(Out)
	asYAML := fs.Bool("yaml", false, "print as YAML")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}
	c := bootstrap.NewClient(cfg, logger)
	it, err := c.Detail(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	if *asYAML {
		return printer.DetailYAML(Out, it)
	}
	printer.Detail(Out, it)
	return nil
}

func init() {
	RegisterCmd(listCmd{})
	RegisterCmd(searchCmd{})
	RegisterCmd(showCmd{})
}
