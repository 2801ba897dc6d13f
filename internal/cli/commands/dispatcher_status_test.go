package commands

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"Pokedex/internal/cli/errs"
	"Pokedex/internal/config"
	"Pokedex/internal/testutil/fakeapi"
)

// fakeCmd позволяет управлять возвратом ошибок из Run
type fakeCmd struct {
	name, usage, desc string
	run               func(ctx context.Context, cfg *config.Config, args []string) error
}

func (f fakeCmd) Name() string        { return f.name }
func (f fakeCmd) Description() string { return f.desc }
func (f fakeCmd) Usage() string       { return f.usage }
func (f fakeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return f.run(ctx, cfg, args)
}

func TestDispatcher_HelpAndUnknown(t *testing.T) {
	out := withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{}) })
	assert.Contains(t, out, "Pokedex CLI")
	for _, name := range []string{"list", "search", "show", "favorites", "fav", "groups",
		"group-create", "group-delete", "history", "browse", "build-group", "status"} {
		_, ok := Get(name)
		assert.True(t, ok, name)
	}

	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"help"}) })
	assert.Contains(t, out, "Usage:")

	var code int
	out = withStdoutCapture(t, func() { code = Dispatch(context.Background(), &config.Config{}, []string{"help", "search"}) })
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage: search <name>")

	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"help", "nope"}) })
	assert.Contains(t, out, "Unknown command")

	withStdoutCapture(t, func() { code = Dispatch(context.Background(), &config.Config{}, []string{"no-such"}) })
	assert.Equal(t, 2, code)
}

func TestDispatcher_RunPaths(t *testing.T) {
	RegisterCmd(fakeCmd{name: "x", usage: "x", run: func(context.Context, *config.Config, []string) error { return nil }})
	assert.Equal(t, 0, Dispatch(context.Background(), &config.Config{}, []string{"x"}))

	RegisterCmd(fakeCmd{name: "u", usage: "u <arg>", run: func(context.Context, *config.Config, []string) error { return ErrUsage }})
	var code int
	out := withStdoutCapture(t, func() { code = Dispatch(context.Background(), &config.Config{}, []string{"u"}) })
	assert.Equal(t, 2, code)
	assert.Contains(t, out, "Usage: u <arg>")

	RegisterCmd(fakeCmd{name: "e", usage: "e", run: func(context.Context, *config.Config, []string) error { return fmt.Errorf("boom") }})
	out = withStdoutCapture(t, func() { code = Dispatch(context.Background(), &config.Config{}, []string{"e"}) })
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "e error: boom")

	RegisterCmd(fakeCmd{name: "v", usage: "v", run: func(context.Context, *config.Config, []string) error {
		return errs.Validation("bad input", "try again")
	}})
	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"v"}) })
	assert.Contains(t, out, "hint: try again")
}

func TestStatus_Run(t *testing.T) {
	srv := fakeapi.New(t, catalog(3))
	cfg := testConfig(t, srv)

	out := withStdoutCapture(t, func() { assert.NoError(t, (statusCmd{}).Run(context.Background(), cfg, nil)) })
	assert.Contains(t, out, "Status: ok")
	assert.Contains(t, out, srv.URL())

	srv.Fail(fakeapi.RouteList, http.StatusInternalServerError)
	assert.Error(t, (statusCmd{}).Run(context.Background(), cfg, nil))
	assert.ErrorIs(t, (statusCmd{}).Run(context.Background(), cfg, []string{"extra"}), ErrUsage)
}

func TestRedactDSN(t *testing.T) {
	assert.Equal(t, "/tmp/m.sqlite", redactDSN("/tmp/m.sqlite"))
	got := redactDSN("postgres://user:secret@db:5432/pokedex")
	assert.False(t, strings.Contains(got, "secret"))
	assert.Contains(t, got, "user")
}
