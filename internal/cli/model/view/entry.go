package view

import "Pokedex/internal/model"

// Entry: элемент модели отображения: покемон и его флаг выбора.
type Entry struct {
	model.Item
	Selected bool
}

// Names returns entry names in order.
func Names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}
