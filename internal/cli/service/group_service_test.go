package service

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"Pokedex/internal/cli/errs"
	"Pokedex/internal/model"
)

func TestGroupCreate_ValidationMakesNoNetworkCall(t *testing.T) {
	items := []model.Item{{Name: "pikachu"}}
	cases := []struct {
		name  string
		group string
		items []model.Item
	}{
		{"blank name", "   ", items},
		{"too long", strings.Repeat("x", model.GroupNameMaxLen+1), items},
		{"no items", "team", nil},
		{"only nameless items", "team", []model.Item{{Name: " "}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gw := new(mockGateway)
			mir := new(mockMirror)
			_, err := NewGroupService(gw, mir, nil).Create(context.Background(), c.group, c.items)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrValidation))
			assert.NotEmpty(t, errs.Hint(err))
			gw.AssertNotCalled(t, "CreateGroup", mock.Anything, mock.Anything)
			mir.AssertNotCalled(t, "SaveGroup", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGroupCreate_NameAtLimitIsAccepted(t *testing.T) {
	name := strings.Repeat("é", model.GroupNameMaxLen)
	_, _, err := ValidateGroup(name, []model.Item{{Name: "mew"}})
	assert.NoError(t, err)
}

func TestGroupCreate_DeduplicatesAndMirrors(t *testing.T) {
	gw := new(mockGateway)
	mir := new(mockMirror)
	ctx := context.Background()
	want := model.GroupRequest{Name: "starters", Pokemons: []model.Item{{Name: "bulbasaur"}, {Name: "charmander"}}}

	gw.On("CreateGroup", ctx, want).Return(model.Group{ID: 3, Name: "starters", Pokemons: want.Pokemons}, nil).Once()
	mir.On("SaveGroup", ctx, "starters", []string{"bulbasaur", "charmander"}).Return("uuid-1", nil).Once()

	g, err := NewGroupService(gw, mir, nil).Create(ctx, " starters ", []model.Item{
		{Name: "bulbasaur"}, {Name: "charmander"}, {Name: "Bulbasaur"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, g.ID)
	gw.AssertExpectations(t)
	mir.AssertExpectations(t)
}

func TestGroupCreate_FillsMissingEcho(t *testing.T) {
	gw := new(mockGateway)
	ctx := context.Background()
	gw.On("CreateGroup", ctx, mock.Anything).Return(model.Group{}, nil)

	g, err := NewGroupService(gw, nil, nil).Create(ctx, "team", []model.Item{{Name: "mew"}})
	require.NoError(t, err)
	assert.Equal(t, "team", g.Name)
	assert.Len(t, g.Pokemons, 1)
}

func TestGroupCreate_ServerErrorIsWrapped(t *testing.T) {
	gw := new(mockGateway)
	mir := new(mockMirror)
	ctx := context.Background()
	gw.On("CreateGroup", ctx, mock.Anything).Return(model.Group{}, errs.Network(errors.New("500"), "POST /group-pokemon"))

	_, err := NewGroupService(gw, mir, nil).Create(ctx, "team", []model.Item{{Name: "mew"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNetwork))
	assert.Contains(t, err.Error(), `create group "team"`)
	mir.AssertNotCalled(t, "SaveGroup", mock.Anything, mock.Anything, mock.Anything)
}

func TestGroupList_And_Delete(t *testing.T) {
	gw := new(mockGateway)
	ctx := context.Background()
	gw.On("Groups", ctx).Return([]model.Group{{ID: 1, Name: "a"}}, nil)
	gw.On("DeleteGroup", ctx, 1).Return(nil)

	s := NewGroupService(gw, nil, nil)
	groups, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 1)
	require.NoError(t, s.Delete(ctx, 1))

	err = s.Delete(ctx, 0)
	assert.True(t, errors.Is(err, errs.ErrValidation))
	gw.AssertNumberOfCalls(t, "DeleteGroup", 1)
}
