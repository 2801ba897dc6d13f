package commands

import (
	"context"
	"fmt"
	"strings"

	"Pokedex/internal/cli/bootstrap"
	"Pokedex/internal/cli/printer"
	"Pokedex/internal/config"
	"Pokedex/internal/model"
)

type favoritesCmd struct{}

func (favoritesCmd) Name() string        { return "favorites" }
func (favoritesCmd) Description() string { return "List favorite pokemon" }
func (favoritesCmd) Usage() string       { return "favorites" }

func (favoritesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	d, done := bootstrap.Open(cfg, logger)
	defer done()
	items, err := d.Favorites.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(Out, "No favorites yet")
		return nil
	}
	printer.Title(Out, "Favorite pokemon", len(items))
	printer.Items(Out, items)
	return nil
}

type favCmd struct{}

func (favCmd) Name() string        { return "fav" }
func (favCmd) Description() string { return "Add or remove a favorite" }
func (favCmd) Usage() string       { return "fav <name>" }

func (favCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return ErrUsage
	}
	d, done := bootstrap.Open(cfg, logger)
	defer done()
	// запись избранного хранит покемона целиком, поэтому берём детали
	it, err := d.Client.DetailByName(ctx, args[0])
	if err != nil {
		return err
	}
	mark, err := d.Favorites.Toggle(ctx, it)
	if err != nil {
		return err
	}
	if mark {
		fmt.Fprintf(Out, "★ %s added to favorites\n", model.Capitalize(it.Name))
	} else {
		fmt.Fprintf(Out, "%s removed from favorites\n", model.Capitalize(it.Name))
	}
	return nil
}

func init() {
	RegisterCmd(favoritesCmd{})
	RegisterCmd(favCmd{})
}
