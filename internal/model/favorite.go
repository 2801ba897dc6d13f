package model

// Favorite: серверная запись избранного: связь покемона и флага mark.
type Favorite struct {
	ID       int   `json:"id"`
	Pokemons *Item `json:"pokemons"`
	Mark     bool  `json:"mark"`
}

// ItemName returns the embedded item name in normalized form, or "".
func (f Favorite) ItemName() string {
	if f.Pokemons == nil {
		return ""
	}
	return f.Pokemons.Key()
}
