// Package printer renders the view model and API records for the terminal.
package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/samber/lo"

	cmodel "Pokedex/internal/cli/model"
	"Pokedex/internal/cli/model/view"
	"Pokedex/internal/model"
)

var (
	title   = color.New(color.Bold, color.Underline)
	faint   = color.New(color.Faint)
	star    = color.New(color.FgHiYellow, color.Bold)
	checked = color.New(color.FgGreen, color.Bold)
)

var typeColors = map[string]*color.Color{
	"normal":   color.New(color.FgWhite),
	"fire":     color.New(color.FgRed),
	"water":    color.New(color.FgBlue),
	"electric": color.New(color.FgHiYellow),
	"grass":    color.New(color.FgGreen),
	"ice":      color.New(color.FgHiCyan),
	"fighting": color.New(color.FgRed, color.Bold),
	"poison":   color.New(color.FgMagenta),
	"ground":   color.New(color.FgYellow),
	"flying":   color.New(color.FgHiBlue),
	"psychic":  color.New(color.FgHiMagenta),
	"bug":      color.New(color.FgHiGreen),
	"rock":     color.New(color.FgYellow, color.Faint),
	"ghost":    color.New(color.FgMagenta, color.Faint),
	"dragon":   color.New(color.FgBlue, color.Bold),
	"dark":     color.New(color.FgHiBlack),
	"steel":    color.New(color.FgWhite, color.Faint),
	"fairy":    color.New(color.FgHiMagenta, color.Faint),
}

// TypeColor returns the color of a pokemon type; unknown types are normal.
func TypeColor(t string) *color.Color {
	if c, ok := typeColors[strings.ToLower(t)]; ok {
		return c
	}
	return typeColors["normal"]
}

// Types renders the type badges of an item.
func Types(types []string) string {
	return strings.Join(lo.Map(types, func(t string, _ int) string {
		return TypeColor(t).Sprint(model.Capitalize(t))
	}), " ")
}

// Title prints a section header with an item count.
func Title(w io.Writer, text string, count int) {
	_, _ = fmt.Fprint(w, title.Sprint(text))
	_, _ = fmt.Fprintln(w, faint.Sprintf(" - %d", count))
}

// Entries prints the view model as a table. With selection the SEL column
// shows which entries are picked.
func Entries(w io.Writer, entries []view.Entry, selection bool) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, faint.Sprint(" none"))
		return
	}
	tbl := uitable.New()
	tbl.MaxColWidth = 40
	header := []any{"#", "ID", "NAME", "TYPES", "FAV"}
	if selection {
		header = append(header, "SEL")
	}
	tbl.AddRow(header...)
	for i, e := range entries {
		row := []any{i + 1, idCell(e.DisplayID()), model.Capitalize(e.Name), Types(e.Types), favCell(e.Mark)}
		if selection {
			row = append(row, selCell(e.Selected))
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

// Items prints plain items (search results, favorites) as a table.
func Items(w io.Writer, items []model.Item) {
	Entries(w, lo.Map(items, func(it model.Item, _ int) view.Entry {
		return view.Entry{Item: it}
	}), false)
}

func idCell(id int) string {
	if id == 0 {
		return "-"
	}
	return strconv.Itoa(id)
}

func favCell(mark bool) string {
	if mark {
		return star.Sprint("★")
	}
	return ""
}

func selCell(selected bool) string {
	if selected {
		return checked.Sprint("[x]")
	}
	return "[ ]"
}

// Groups prints server groups with their members.
func Groups(w io.Writer, groups []model.Group) {
	if len(groups) == 0 {
		_, _ = fmt.Fprintln(w, faint.Sprint(" no groups"))
		return
	}
	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow("ID", "NAME", "SIZE", "MEMBERS")
	for _, g := range groups {
		members := lo.Map(g.Pokemons, func(it model.Item, _ int) string { return model.Capitalize(it.Name) })
		tbl.AddRow(g.ID, g.Name, len(g.Pokemons), strings.Join(members, ", "))
	}
	_, _ = fmt.Fprintln(w, tbl)
}

// History prints the local mirror: created groups and favorite names.
func History(w io.Writer, groups []cmodel.LocalGroup, favorites []string) {
	Title(w, "Groups created here", len(groups))
	if len(groups) > 0 {
		tbl := uitable.New()
		tbl.MaxColWidth = 60
		tbl.Wrap = true
		tbl.AddRow("CREATED", "NAME", "MEMBERS")
		for _, g := range groups {
			tbl.AddRow(g.CreatedAt.Local().Format("2006-01-02 15:04"), g.Name, strings.Join(g.MemberNames(), ", "))
		}
		_, _ = fmt.Fprintln(w, tbl)
	}
	Title(w, "Favorites marked here", len(favorites))
	for _, n := range favorites {
		_, _ = fmt.Fprintf(w, "  %s %s\n", star.Sprint("★"), model.Capitalize(n))
	}
}
