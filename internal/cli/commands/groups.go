package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"

	"Pokedex/internal/cli/api"
	"Pokedex/internal/cli/bootstrap"
	"Pokedex/internal/cli/printer"
	"Pokedex/internal/cli/service"
	"Pokedex/internal/config"
	"Pokedex/internal/model"
)

// detailWorkers ограничивает число параллельных запросов деталей.
const detailWorkers = 4

type groupsCmd struct{}

func (groupsCmd) Name() string        { return "groups" }
func (groupsCmd) Description() string { return "List groups on the server" }
func (groupsCmd) Usage() string       { return "groups" }

func (groupsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	d, done := bootstrap.Open(cfg, logger)
	defer done()
	groups, err := d.Groups.List(ctx)
	if err != nil {
		return err
	}
	printer.Title(Out, "Groups", len(groups))
	printer.Groups(Out, groups)
	return nil
}

type groupCreateCmd struct{}

func (groupCreateCmd) Name() string        { return "group-create" }
func (groupCreateCmd) Description() string { return "Create a group from pokemon names" }
func (groupCreateCmd) Usage() string       { return "group-create <name> <pokemon>..." }

func (groupCreateCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	name, names := args[0], args[1:]
	// проверка до сети: пустое имя, длина, пустой состав
	placeholders := lo.Map(names, func(n string, _ int) model.Item { return model.Item{Name: n} })
	if _, _, err := service.ValidateGroup(name, placeholders); err != nil {
		return err
	}

	d, done := bootstrap.Open(cfg, logger)
	defer done()
	items, err := fetchDetails(ctx, d.Client, names)
	if err != nil {
		return err
	}
	g, err := d.Groups.Create(ctx, name, items)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Group %q created (id %d, %d pokemon)\n", g.Name, g.ID, len(g.Pokemons))
	return nil
}

// fetchDetails loads details for names in parallel and returns them in the
// order of names, without duplicates.
func fetchDetails(ctx context.Context, c *api.Client, names []string) ([]model.Item, error) {
	names = lo.Uniq(lo.Map(names, func(n string, _ int) string { return model.NormalizeName(n) }))
	p := pool.NewWithResults[model.Item]().WithErrors().WithContext(ctx).
		WithFirstError().WithCancelOnError().WithMaxGoroutines(detailWorkers)
	for _, n := range names {
		p.Go(func(ctx context.Context) (model.Item, error) {
			it, err := c.DetailByName(ctx, n)
			if err != nil {
				return model.Item{}, errors.Wrapf(err, "pokemon %q", n)
			}
			return it, nil
		})
	}
	found, err := p.Wait()
	if err != nil {
		return nil, err
	}
	byName := lo.KeyBy(found, model.Item.Key)
	return lo.FilterMap(names, func(n string, _ int) (model.Item, bool) {
		it, ok := byName[n]
		return it, ok
	}), nil
}

type groupDeleteCmd struct{}

func (groupDeleteCmd) Name() string        { return "group-delete" }
func (groupDeleteCmd) Description() string { return "Delete a group by id" }
func (groupDeleteCmd) Usage() string       { return "group-delete <id>" }

func (groupDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return ErrUsage
	}
	d, done := bootstrap.Open(cfg, logger)
	defer done()
	if err := d.Groups.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Group %d deleted\n", id)
	return nil
}

type historyCmd struct{}

func (historyCmd) Name() string        { return "history" }
func (historyCmd) Description() string { return "Show groups and favorites recorded on this machine" }
func (historyCmd) Usage() string       { return "history" }

func (historyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	m, done, err := bootstrap.OpenMirror(cfg)
	if err != nil {
		return err
	}
	defer done()
	groups, err := m.ListGroups(ctx)
	if err != nil {
		return err
	}
	favs, err := m.ListFavorites(ctx)
	if err != nil {
		return err
	}
	printer.History(Out, groups, favs)
	return nil
}

func init() {
	RegisterCmd(groupsCmd{})
	RegisterCmd(groupCreateCmd{})
	RegisterCmd(groupDeleteCmd{})
	RegisterCmd(historyCmd{})
}
