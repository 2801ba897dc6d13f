package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	cmodel "Pokedex/internal/cli/model"
	"Pokedex/internal/model"
)

// --- Мок шлюза ---
type mockGateway struct{ mock.Mock }

func (m *mockGateway) Favorites(ctx context.Context) ([]model.Favorite, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Favorite); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGateway) AddFavorite(ctx context.Context, it model.Item) error {
	return m.Called(ctx, it).Error(0)
}
func (m *mockGateway) ToggleFavorite(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockGateway) Groups(ctx context.Context) ([]model.Group, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Group); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGateway) CreateGroup(ctx context.Context, req model.GroupRequest) (model.Group, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.Group), args.Error(1)
}
func (m *mockGateway) DeleteGroup(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

// --- Мок зеркала ---
type mockMirror struct{ mock.Mock }

func (m *mockMirror) SaveGroup(ctx context.Context, name string, members []string) (string, error) {
	args := m.Called(ctx, name, members)
	return args.String(0), args.Error(1)
}
func (m *mockMirror) ListGroups(ctx context.Context) ([]cmodel.LocalGroup, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]cmodel.LocalGroup); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMirror) AddFavorite(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}
func (m *mockMirror) RemoveFavorite(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}
func (m *mockMirror) ListFavorites(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]string); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func fav(id int, name string, mark bool) model.Favorite {
	return model.Favorite{ID: id, Pokemons: &model.Item{Name: name}, Mark: mark}
}
