package model

// GroupNameMaxLen is the longest group name the service accepts.
const GroupNameMaxLen = 50

// Group: именованная группа покемонов, id назначает сервер.
type Group struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Pokemons []Item `json:"pokemons"`
}

// GroupRequest is the body of POST /group-pokemon.
type GroupRequest struct {
	Name     string `json:"name"`
	Pokemons []Item `json:"pokemons"`
}
