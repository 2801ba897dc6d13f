// Package bootstrap builds the client-side dependencies from the config.
package bootstrap

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"Pokedex/internal/cli/api"
	"Pokedex/internal/cli/repo"
	"Pokedex/internal/cli/repo/gormrepo"
	"Pokedex/internal/cli/service"
	"Pokedex/internal/config"
)

// NewClient создаёт шлюз к API каталога по настройкам cfg.
func NewClient(cfg *config.Config, logger *zap.SugaredLogger) *api.Client {
	return api.New(cfg.APIURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithCacheTTL(cfg.CacheTTL),
		api.WithLogger(logger),
	)
}

// OpenMirror открывает локальное зеркало, выполняет миграции и возвращает
// (repo, cleanup, error). cleanup нужно вызвать по окончании работы.
func OpenMirror(cfg *config.Config) (repo.MirrorRepository, func() error, error) {
	m, err := gormrepo.Open(cfg.MirrorDSN)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open mirror")
	}
	if err := m.Migrate(); err != nil {
		_ = m.Close()
		return nil, nil, errors.Wrap(err, "migrate mirror")
	}
	return m, m.Close, nil
}

// Deps is everything a command needs to talk to the service.
type Deps struct {
	Client    *api.Client
	Mirror    repo.MirrorRepository
	Favorites service.FavoriteService
	Groups    service.GroupService
}

// Open builds Deps. The mirror is optional here: when it cannot be opened the
// failure is logged and the services run without it.
func Open(cfg *config.Config, logger *zap.SugaredLogger) (*Deps, func() error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	d := &Deps{Client: NewClient(cfg, logger)}
	cleanup := func() error { return nil }
	if m, done, err := OpenMirror(cfg); err != nil {
		logger.Warnw("local mirror unavailable", "dsn", cfg.MirrorDSN, "error", err)
	} else {
		d.Mirror = m
		cleanup = done
	}
	d.Favorites = service.NewFavoriteService(d.Client, d.Mirror, logger)
	d.Groups = service.NewGroupService(d.Client, d.Mirror, logger)
	return d, cleanup
}
