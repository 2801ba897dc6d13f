package service

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"Pokedex/internal/cli/errs"
	"Pokedex/internal/model"
)

func TestFavoriteToggle_AddsWhenNoRecord(t *testing.T) {
	gw := new(mockGateway)
	mir := new(mockMirror)
	ctx := context.Background()
	it := model.Item{ID: 25, Name: "pikachu"}

	gw.On("Favorites", ctx).Return([]model.Favorite{fav(1, "eevee", true)}, nil).Once()
	gw.On("AddFavorite", ctx, it).Return(nil).Once()
	gw.On("Favorites", ctx).Return([]model.Favorite{fav(1, "eevee", true), fav(2, "Pikachu", true)}, nil).Once()
	mir.On("AddFavorite", ctx, "pikachu").Return(nil).Once()

	s := NewFavoriteService(gw, mir, nil)
	mark, err := s.Toggle(ctx, it)
	require.NoError(t, err)
	assert.True(t, mark)
	gw.AssertExpectations(t)
	gw.AssertNotCalled(t, "ToggleFavorite", mock.Anything, mock.Anything)
	mir.AssertExpectations(t)
}

func TestFavoriteToggle_TogglesExistingRecord(t *testing.T) {
	gw := new(mockGateway)
	mir := new(mockMirror)
	ctx := context.Background()

	gw.On("Favorites", ctx).Return([]model.Favorite{fav(7, "pikachu", true)}, nil).Once()
	gw.On("ToggleFavorite", ctx, 7).Return(nil).Once()
	gw.On("Favorites", ctx).Return([]model.Favorite{fav(7, "pikachu", false)}, nil).Once()
	mir.On("RemoveFavorite", ctx, "pikachu").Return(nil).Once()

	s := NewFavoriteService(gw, mir, nil)
	mark, err := s.Toggle(ctx, model.Item{Name: "PIKACHU"})
	require.NoError(t, err)
	assert.False(t, mark)
	gw.AssertNotCalled(t, "AddFavorite", mock.Anything, mock.Anything)
	mir.AssertExpectations(t)
}

func TestFavoriteToggle_ReadBackFailureReturnsError(t *testing.T) {
	gw := new(mockGateway)
	mir := new(mockMirror)
	ctx := context.Background()

	gw.On("Favorites", ctx).Return([]model.Favorite{fav(7, "pikachu", false)}, nil).Once()
	gw.On("ToggleFavorite", ctx, 7).Return(nil).Once()
	gw.On("Favorites", ctx).Return(nil, errs.Network(errors.New("boom"), "GET /favorite")).Once()

	s := NewFavoriteService(gw, mir, nil)
	mark, err := s.Toggle(ctx, model.Item{Name: "pikachu"})
	require.Error(t, err)
	assert.False(t, mark)
	assert.True(t, errors.Is(err, errs.ErrNetwork))
	// зеркало не трогаем без подтверждения
	mir.AssertNotCalled(t, "AddFavorite", mock.Anything, mock.Anything)
	mir.AssertNotCalled(t, "RemoveFavorite", mock.Anything, mock.Anything)
}

func TestFavoriteToggle_WriteFailureSkipsReadBack(t *testing.T) {
	gw := new(mockGateway)
	ctx := context.Background()
	it := model.Item{Name: "mew"}

	gw.On("Favorites", ctx).Return([]model.Favorite{}, nil).Once()
	gw.On("AddFavorite", ctx, it).Return(errs.Network(errors.New("503"), "POST /favorite")).Once()

	s := NewFavoriteService(gw, nil, nil)
	_, err := s.Toggle(ctx, it)
	require.Error(t, err)
	gw.AssertNumberOfCalls(t, "Favorites", 1)
}

func TestFavoriteToggle_MirrorFailureIsNotFatal(t *testing.T) {
	gw := new(mockGateway)
	mir := new(mockMirror)
	ctx := context.Background()
	it := model.Item{Name: "ditto"}

	gw.On("Favorites", ctx).Return([]model.Favorite{}, nil).Once()
	gw.On("AddFavorite", ctx, it).Return(nil)
	gw.On("Favorites", ctx).Return([]model.Favorite{fav(1, "ditto", true)}, nil).Once()
	mir.On("AddFavorite", ctx, "ditto").Return(errors.New("disk full"))

	mark, err := NewFavoriteService(gw, mir, nil).Toggle(ctx, it)
	require.NoError(t, err)
	assert.True(t, mark)
}

func TestFavoriteToggle_EmptyName(t *testing.T) {
	gw := new(mockGateway)
	_, err := NewFavoriteService(gw, nil, nil).Toggle(context.Background(), model.Item{})
	assert.Error(t, err)
	gw.AssertNotCalled(t, "Favorites", mock.Anything)
}

func TestFavoriteList_DropsRecordsWithoutItem(t *testing.T) {
	gw := new(mockGateway)
	ctx := context.Background()
	gw.On("Favorites", ctx).Return([]model.Favorite{
		fav(1, "eevee", true),
		{ID: 2, Pokemons: nil, Mark: true},
		fav(3, "snorlax", false),
	}, nil)

	items, err := NewFavoriteService(gw, nil, nil).List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "eevee", items[0].Name)
	assert.True(t, items[0].Mark)
	assert.False(t, items[1].Mark)
}

func TestFavoriteMarks_CaseInsensitive(t *testing.T) {
	gw := new(mockGateway)
	ctx := context.Background()
	gw.On("Favorites", ctx).Return([]model.Favorite{fav(1, "Eevee", true), fav(2, "mew", false)}, nil)

	marks, err := NewFavoriteService(gw, nil, nil).Marks(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"eevee": true, "mew": false}, marks)
}
