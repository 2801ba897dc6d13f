package commands

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Pokedex/internal/cli/errs"
	"Pokedex/internal/model"
	"Pokedex/internal/testutil/fakeapi"
)

func TestFav_ToggleAndFavorites(t *testing.T) {
	srv := fakeapi.New(t, catalog(5))
	cfg := testConfig(t, srv)
	ctx := context.Background()

	out := withStdoutCapture(t, func() { require.NoError(t, (favoritesCmd{}).Run(ctx, cfg, nil)) })
	assert.Contains(t, out, "No favorites yet")

	out = withStdoutCapture(t, func() { require.NoError(t, (favCmd{}).Run(ctx, cfg, []string{"Poke03"})) })
	assert.Contains(t, out, "Poke03 added to favorites")

	out = withStdoutCapture(t, func() { require.NoError(t, (favoritesCmd{}).Run(ctx, cfg, nil)) })
	assert.Contains(t, out, "Poke03")

	out = withStdoutCapture(t, func() { require.NoError(t, (favCmd{}).Run(ctx, cfg, []string{"poke03"})) })
	assert.Contains(t, out, "removed from favorites")

	// зеркало отражает последнее подтверждённое состояние
	out = withStdoutCapture(t, func() { require.NoError(t, (historyCmd{}).Run(ctx, cfg, nil)) })
	assert.Contains(t, out, "Favorites marked here - 0")

	err := (favCmd{}).Run(ctx, cfg, []string{"missingno"})
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	assert.ErrorIs(t, (favCmd{}).Run(ctx, cfg, nil), ErrUsage)
}

func TestGroupCreate_ListDeleteHistory(t *testing.T) {
	srv := fakeapi.New(t, catalog(5))
	cfg := testConfig(t, srv)
	ctx := context.Background()

	out := withStdoutCapture(t, func() {
		require.NoError(t, (groupCreateCmd{}).Run(ctx, cfg, []string{"trio", "poke03", "POKE01", "poke05", "poke01"}))
	})
	assert.Contains(t, out, `Group "trio" created (id 1, 3 pokemon)`)
	groups := srv.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"poke03", "poke01", "poke05"},
		[]string{groups[0].Pokemons[0].Name, groups[0].Pokemons[1].Name, groups[0].Pokemons[2].Name})

	out = withStdoutCapture(t, func() { require.NoError(t, (groupsCmd{}).Run(ctx, cfg, nil)) })
	assert.Contains(t, out, "trio")
	assert.Contains(t, out, "Poke03, Poke01, Poke05")

	out = withStdoutCapture(t, func() { require.NoError(t, (historyCmd{}).Run(ctx, cfg, nil)) })
	assert.Contains(t, out, "Groups created here - 1")
	assert.Contains(t, out, "poke03, poke01, poke05")

	out = withStdoutCapture(t, func() { require.NoError(t, (groupDeleteCmd{}).Run(ctx, cfg, []string{"1"})) })
	assert.Contains(t, out, "Group 1 deleted")
	assert.Empty(t, srv.Groups())

	assert.Error(t, (groupDeleteCmd{}).Run(ctx, cfg, []string{"1"}))
	assert.ErrorIs(t, (groupDeleteCmd{}).Run(ctx, cfg, []string{"one"}), ErrUsage)
}

func TestGroupCreate_ValidationBeforeNetwork(t *testing.T) {
	srv := fakeapi.New(t, catalog(2))
	cfg := testConfig(t, srv)
	ctx := context.Background()

	for _, args := range [][]string{
		{"team"},
		{" ", "poke01"},
		{strings.Repeat("n", model.GroupNameMaxLen+1), "poke01"},
	} {
		err := (groupCreateCmd{}).Run(ctx, cfg, args)
		assert.True(t, errors.Is(err, errs.ErrValidation), args)
	}
	assert.Zero(t, srv.TotalHits())
	assert.ErrorIs(t, (groupCreateCmd{}).Run(ctx, cfg, nil), ErrUsage)
}

func TestGroupCreate_UnknownPokemon(t *testing.T) {
	srv := fakeapi.New(t, catalog(2))
	err := (groupCreateCmd{}).Run(context.Background(), testConfig(t, srv), []string{"team", "poke01", "missingno"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	assert.Contains(t, err.Error(), "missingno")
	assert.Zero(t, srv.Hits(fakeapi.RouteCreateGroup))
}

func TestGroups_ServerDown(t *testing.T) {
	srv := fakeapi.New(t, nil)
	srv.Fail(fakeapi.RouteGroups, http.StatusServiceUnavailable)
	err := (groupsCmd{}).Run(context.Background(), testConfig(t, srv), nil)
	assert.True(t, errors.Is(err, errs.ErrNetwork))
}
