package commands

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"Pokedex/internal/config"
	"Pokedex/internal/model"
	"Pokedex/internal/testutil/fakeapi"
)

func init() { color.NoColor = true }

// testConfig указывает на fake API и временное зеркало.
func testConfig(t *testing.T, srv *fakeapi.Server) *config.Config {
	t.Helper()
	return &config.Config{
		APIURL:         srv.URL(),
		PageSize:       20,
		SearchDebounce: 10 * time.Millisecond,
		CacheTTL:       time.Minute,
		RequestTimeout: 5 * time.Second,
		MirrorDSN:      filepath.Join(t.TempDir(), "mirror.sqlite"),
	}
}

func catalog(n int) []model.Item {
	out := make([]model.Item, n)
	for i := range out {
		out[i] = model.Item{ID: i + 1, Name: fmt.Sprintf("poke%02d", i+1), Types: []string{"grass"}}
	}
	return out
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// withInput подставляет строки как ввод интерактивной сессии.
func withInput(t *testing.T, lines ...string) {
	t.Helper()
	old := In
	In = io.Reader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	t.Cleanup(func() { In = old })
}
