package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Pokedex/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		APIURL:         "http://localhost:5050/api",
		RequestTimeout: time.Second,
		CacheTTL:       time.Minute,
		MirrorDSN:      filepath.Join(t.TempDir(), "mirror", "mirror.sqlite"),
	}
}

func TestOpenMirror_SuccessAndCleanup(t *testing.T) {
	cfg := testConfig(t)
	r, done, err := OpenMirror(cfg)
	require.NoError(t, err)

	// репозиторий должен быть рабочим
	require.NoError(t, r.AddFavorite(context.Background(), "pikachu"))
	names, err := r.ListFavorites(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"pikachu"}, names)

	require.NoError(t, done())
	_, err = os.Stat(cfg.MirrorDSN)
	assert.NoError(t, err)
}

// Ошибка открытия: каталог зеркала указывает на обычный файл
func TestOpenMirror_FailsWhenDirIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	cfg := testConfig(t)
	cfg.MirrorDSN = filepath.Join(blocker, "mirror.sqlite")
	_, _, err := OpenMirror(cfg)
	assert.Error(t, err)
}

func TestOpen_WithoutMirrorStillBuildsServices(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	cfg := testConfig(t)
	cfg.MirrorDSN = filepath.Join(blocker, "mirror.sqlite")

	d, done := Open(cfg, nil)
	defer done()
	assert.Nil(t, d.Mirror)
	assert.NotNil(t, d.Favorites)
	assert.NotNil(t, d.Groups)
	assert.Equal(t, cfg.APIURL, d.Client.BaseURL())
}

func TestOpen_WithMirror(t *testing.T) {
	d, done := Open(testConfig(t), nil)
	assert.NotNil(t, d.Mirror)
	assert.NoError(t, done())
}
