package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"Pokedex/internal/cli/bootstrap"
	"Pokedex/internal/cli/errs"
	"Pokedex/internal/cli/printer"
	"Pokedex/internal/cli/session"
	"Pokedex/internal/config"
	"Pokedex/internal/model"
)

const browseHelp = `commands:
  search <name>     search by name (empty clears)
  clear             back to the full list
  more              load the next page
  fav <name>        add or remove a favorite
  show <name>       pokemon details
  list              print the list again
  quit              leave
`

const groupHelp = `commands:
  search <name>     search by name (empty clears)
  clear             back to the full list
  more              load the next page
  select <name>...  add pokemon to the group
  unselect <name>...
  create <name>     create the group from the selection
  show <name>       pokemon details
  list              print the list again
  quit              leave
`

type browseCmd struct{}

func (browseCmd) Name() string        { return "browse" }
func (browseCmd) Description() string { return "Interactive catalog with search and favorites" }
func (browseCmd) Usage() string       { return "browse" }

func (browseCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return runInteractive(ctx, cfg, session.ModeBrowse)
}

type buildGroupCmd struct{}

func (buildGroupCmd) Name() string        { return "build-group" }
func (buildGroupCmd) Description() string { return "Interactive group builder" }
func (buildGroupCmd) Usage() string       { return "build-group" }

func (buildGroupCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return runInteractive(ctx, cfg, session.ModeGroup)
}

// repl: одна интерактивная сессия поверх session.Session.
type repl struct {
	s      *session.Session
	deps   *bootstrap.Deps
	dirty  atomic.Bool
	prompt string
}

func runInteractive(ctx context.Context, cfg *config.Config, mode session.Mode) error {
	d, done := bootstrap.Open(cfg, logger)
	defer done()

	s := session.New(ctx, d.Client, mode,
		session.WithPageSize(cfg.PageSize),
		session.WithDebounce(cfg.SearchDebounce),
		session.WithStrictPages(cfg.StrictPages),
		session.WithFavorites(d.Favorites),
		session.WithGroups(d.Groups),
		session.WithLogger(logger),
	)
	defer s.Close()

	r := &repl{s: s, deps: d, prompt: mode.String() + "> "}
	s.OnChange(func() { r.dirty.Store(true) })
	if err := s.Open(ctx); err != nil {
		return err
	}
	r.render()
	if mode == session.ModeGroup {
		fmt.Fprint(Out, groupHelp)
	} else {
		fmt.Fprint(Out, browseHelp)
	}

	sc := bufio.NewScanner(In)
	for {
		fmt.Fprint(Out, r.prompt)
		if !sc.Scan() {
			fmt.Fprintln(Out)
			return sc.Err()
		}
		if quit := r.exec(ctx, sc.Text()); quit {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// exec выполняет одну строку ввода; true означает выход из сессии.
func (r *repl) exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		if r.s.Mode() == session.ModeGroup {
			fmt.Fprint(Out, groupHelp)
		} else {
			fmt.Fprint(Out, browseHelp)
		}
		return false
	case "list", "ls":
		r.render()
		return false
	case "search", "s":
		r.s.SubmitSearch(rest)
		r.s.Wait()
	case "clear":
		r.s.ClearSearch()
	case "more", "m":
		if !r.s.LoadMore() {
			r.explainNoMore()
			return false
		}
		r.s.Wait()
	case "select", "+":
		r.toggle(strings.Fields(rest), true)
	case "unselect", "-":
		r.toggle(strings.Fields(rest), false)
	case "fav", "f":
		mark, err := r.s.ToggleFavorite(ctx, rest)
		if err != nil {
			r.report(err)
			return false
		}
		state := "removed from"
		if mark {
			state = "added to"
		}
		fmt.Fprintf(Out, "%s %s favorites\n", model.Capitalize(model.NormalizeName(rest)), state)
	case "create":
		g, err := r.s.CreateGroup(ctx, rest)
		if err != nil {
			r.report(err)
			return false
		}
		fmt.Fprintf(Out, "Group %q created (id %d, %d pokemon)\n", g.Name, g.ID, len(g.Pokemons))
	case "show":
		it, err := r.deps.Client.Detail(ctx, rest)
		if err != nil {
			r.report(err)
			return false
		}
		printer.Detail(Out, it)
		return false
	default:
		fmt.Fprintf(Out, "unknown command %q, type help\n", cmd)
		return false
	}
	if r.dirty.Swap(false) {
		r.render()
	}
	return false
}

func (r *repl) toggle(names []string, selected bool) {
	if len(names) == 0 {
		fmt.Fprintln(Out, "name required")
		return
	}
	for _, n := range names {
		if err := r.s.Toggle(n, selected); err != nil {
			r.report(err)
		}
	}
}

func (r *repl) explainNoMore() {
	switch {
	case strings.TrimSpace(r.s.Query()) != "":
		fmt.Fprintln(Out, "paging is paused while searching, type clear")
	case !r.s.Cursor().HasMore:
		fmt.Fprintln(Out, "no more pokemon")
	default:
		fmt.Fprintln(Out, "a page is already loading")
	}
}

func (r *repl) render() {
	r.dirty.Store(false)
	entries := r.s.View()
	group := r.s.Mode() == session.ModeGroup
	if q := strings.TrimSpace(r.s.Query()); q != "" {
		printer.Title(Out, fmt.Sprintf("Search %q", q), len(entries))
	} else {
		printer.Title(Out, "Pokemon", len(entries))
	}
	printer.Entries(Out, entries, group)
	if group {
		fmt.Fprintf(Out, "selected: %d\n", len(r.s.Selection()))
	}
}

func (r *repl) report(err error) {
	fmt.Fprintf(Out, "error: %v\n", err)
	if hint := errs.Hint(err); hint != "" {
		fmt.Fprintf(Out, "hint: %s\n", hint)
	}
}

func init() {
	RegisterCmd(browseCmd{})
	RegisterCmd(buildGroupCmd{})
}
