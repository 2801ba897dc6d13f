package service

import (
	"context"

	"Pokedex/internal/cli/api"
	"Pokedex/internal/model"
)

// FavoritesGateway: часть удалённого шлюза, нужная сервису избранного.
type FavoritesGateway interface {
	Favorites(ctx context.Context) ([]model.Favorite, error)
	AddFavorite(ctx context.Context, it model.Item) error
	ToggleFavorite(ctx context.Context, id int) error
}

// GroupsGateway: часть удалённого шлюза, нужная сервису групп.
type GroupsGateway interface {
	Groups(ctx context.Context) ([]model.Group, error)
	CreateGroup(ctx context.Context, req model.GroupRequest) (model.Group, error)
	DeleteGroup(ctx context.Context, id int) error
}

var (
	_ FavoritesGateway = (*api.Client)(nil)
	_ GroupsGateway    = (*api.Client)(nil)
)
