package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Item: запись каталога. Name является ключом для всех слияний.
type Item struct {
	ID        int       `json:"id,omitempty"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	Types     []string  `json:"types,omitempty"`
	Height    int       `json:"height,omitempty"` // дециметры
	Weight    int       `json:"weight,omitempty"` // гектограммы
	Abilities []Ability `json:"abilities,omitempty"`
	Stats     []Stat    `json:"stats,omitempty"`
	Mark      bool      `json:"mark,omitempty"`
}

// Ability of a pokemon as returned by the detail endpoint.
type Ability struct {
	Name string `json:"name"`
}

// Stat is a single base stat.
type Stat struct {
	Name     string `json:"name"`
	BaseStat int    `json:"base_stat"`
}

// Key returns the merge identity of the item.
func (it Item) Key() string {
	return NormalizeName(it.Name)
}

// NormalizeName приводит имя к виду, в котором его хранит сервис.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// HeightMeters converts the served height to meters.
func (it Item) HeightMeters() float64 { return float64(it.Height) / 10 }

// WeightKilograms converts the served weight to kilograms.
func (it Item) WeightKilograms() float64 { return float64(it.Weight) / 10 }

// AbilityNames returns ability names joined for display.
func (it Item) AbilityNames() string {
	names := make([]string, 0, len(it.Abilities))
	for _, a := range it.Abilities {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

const artworkBase = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/"

// ImageURL возвращает ссылку на официальный арт по числовому id.
func ImageURL(id int) string {
	return fmt.Sprintf("%s%d.png", artworkBase, id)
}

var idRe = regexp.MustCompile(`/pokemon/(\d+)/|/(\d+)\.png$`)

// ExtractID достаёт числовой id из ссылки вида .../pokemon/25/ или из ссылки
// на арт .../25.png. Второе значение false, если id в ссылке нет.
func ExtractID(url string) (int, bool) {
	m := idRe.FindStringSubmatch(url)
	if m == nil {
		return 0, false
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

// DisplayID returns ID, or the id encoded in Image when the list endpoint
// did not send one.
func (it Item) DisplayID() int {
	if it.ID != 0 {
		return it.ID
	}
	id, _ := ExtractID(it.Image)
	return id
}

// Capitalize upper-cases the first letter.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
