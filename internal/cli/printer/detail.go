package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"Pokedex/internal/model"
)

// StatRow is a stat prepared for display.
type StatRow struct {
	Name     string `yaml:"name"`
	Value    int    `yaml:"value"`
	FullName string `yaml:"-"`
}

// FormatStatName turns "special-attack" into "SPECIAL ATTACK".
func FormatStatName(name string) string {
	return strings.ToUpper(strings.Replace(name, "-", " ", 1))
}

// FormatStats prepares stats for display, keeping their order.
func FormatStats(stats []model.Stat) []StatRow {
	return lo.Map(stats, func(s model.Stat, _ int) StatRow {
		return StatRow{Name: FormatStatName(s.Name), Value: s.BaseStat, FullName: s.Name}
	})
}

// detailDoc: YAML-представление карточки покемона.
type detailDoc struct {
	ID        int       `yaml:"id,omitempty"`
	Name      string    `yaml:"name"`
	Image     string    `yaml:"image,omitempty"`
	Types     []string  `yaml:"types,omitempty"`
	HeightM   float64   `yaml:"height_m"`
	WeightKg  float64   `yaml:"weight_kg"`
	Abilities []string  `yaml:"abilities,omitempty"`
	Stats     []StatRow `yaml:"stats,omitempty"`
	Favorite  bool      `yaml:"favorite"`
}

func newDetailDoc(it model.Item) detailDoc {
	id := it.DisplayID()
	img := it.Image
	if img == "" && id > 0 {
		img = model.ImageURL(id)
	}
	return detailDoc{
		ID:        id,
		Name:      model.Capitalize(it.Name),
		Image:     img,
		Types:     it.Types,
		HeightM:   it.HeightMeters(),
		WeightKg:  it.WeightKilograms(),
		Abilities: lo.Map(it.Abilities, func(a model.Ability, _ int) string { return a.Name }),
		Stats:     FormatStats(it.Stats),
		Favorite:  it.Mark,
	}
}

// DetailYAML writes the item detail as YAML.
func DetailYAML(w io.Writer, it model.Item) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDetailDoc(it)); err != nil {
		return err
	}
	return enc.Close()
}

// Detail writes the item detail as a card with a bar per stat.
func Detail(w io.Writer, it model.Item) {
	d := newDetailDoc(it)
	_, _ = fmt.Fprintln(w, title.Sprint(d.Name))
	tbl := uitable.New()
	tbl.AddRow("ID:", idCell(d.ID))
	tbl.AddRow("Types:", Types(d.Types))
	tbl.AddRow("Height:", fmt.Sprintf("%.1f m", d.HeightM))
	tbl.AddRow("Weight:", fmt.Sprintf("%.1f kg", d.WeightKg))
	tbl.AddRow("Abilities:", it.AbilityNames())
	if d.Image != "" {
		tbl.AddRow("Image:", d.Image)
	}
	_, _ = fmt.Fprintln(w, tbl)

	if len(d.Stats) == 0 {
		return
	}
	stats := uitable.New()
	for _, s := range d.Stats {
		stats.AddRow(s.Name, s.Value, faint.Sprint(bar(s.Value)))
	}
	_, _ = fmt.Fprintln(w, stats)
}

// bar рисует полосу длиной value/10, но не больше 25 символов.
func bar(value int) string {
	n := min(max(value/10, 0), 25)
	return strings.Repeat("█", n)
}
