// Package gormrepo implements the local mirror on gorm. SQLite (modernc,
// pure Go) is the default; a postgres:// DSN switches to Postgres.
package gormrepo

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"Pokedex/internal/cli/model"
	"Pokedex/internal/cli/repo"
	pmodel "Pokedex/internal/model"
)

// Mirror: репозиторий локального зеркала поверх gorm.
type Mirror struct {
	db *gorm.DB
}

var _ repo.MirrorRepository = (*Mirror)(nil)

// Open открывает (и при необходимости создаёт) базу по dsn.
// Для SQLite каталог файла создаётся автоматически.
func Open(dsn string) (*Mirror, error) {
	if dsn == "" {
		return nil, errors.New("empty mirror dsn")
	}
	dial := dialectorFor(dsn)
	if dial.Name() == "sqlite" {
		if dir := sqliteDir(dsn); dir != "" {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, errors.Wrap(err, "create mirror dir")
			}
		}
	}
	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errors.Wrapf(err, "open mirror (%s)", dial.Name())
	}
	return New(db), nil
}

// New wraps an already opened connection.
func New(db *gorm.DB) *Mirror {
	return &Mirror{db: db}
}

func dialectorFor(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres.Open(dsn)
	}
	return gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
}

// sqliteDir возвращает каталог файла БД или "" для in-memory DSN.
func sqliteDir(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.Contains(path, ":memory:") {
		return ""
	}
	return filepath.Dir(path)
}

// Migrate гарантирует наличие таблиц зеркала.
func (m *Mirror) Migrate() error {
	return m.db.AutoMigrate(&model.LocalGroup{}, &model.LocalFavorite{})
}

// Close закрывает соединение с БД.
func (m *Mirror) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveGroup stores a group snapshot under a fresh uuid.
func (m *Mirror) SaveGroup(ctx context.Context, name string, members []string) (string, error) {
	g := &model.LocalGroup{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(name),
		Members: strings.Join(lo.Map(members, func(s string, _ int) string { return pmodel.NormalizeName(s) }), ","),
	}
	if err := m.db.WithContext(ctx).Create(g).Error; err != nil {
		return "", errors.Wrap(err, "save group")
	}
	return g.ID, nil
}

// ListGroups returns the mirrored groups, newest first.
func (m *Mirror) ListGroups(ctx context.Context) ([]model.LocalGroup, error) {
	var out []model.LocalGroup
	if err := m.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list groups")
	}
	return out, nil
}

// AddFavorite records name; a second add is a no-op.
func (m *Mirror) AddFavorite(ctx context.Context, name string) error {
	f := &model.LocalFavorite{Name: pmodel.NormalizeName(name)}
	if f.Name == "" {
		return errors.New("empty favorite name")
	}
	err := m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(f).Error
	return errors.Wrap(err, "add favorite")
}

// RemoveFavorite forgets name.
func (m *Mirror) RemoveFavorite(ctx context.Context, name string) error {
	err := m.db.WithContext(ctx).
		Where("name = ?", pmodel.NormalizeName(name)).
		Delete(&model.LocalFavorite{}).Error
	return errors.Wrap(err, "remove favorite")
}

// ListFavorites returns favorite names sorted alphabetically.
func (m *Mirror) ListFavorites(ctx context.Context) ([]string, error) {
	var names []string
	err := m.db.WithContext(ctx).
		Model(&model.LocalFavorite{}).
		Order("name").
		Pluck("name", &names).Error
	if err != nil {
		return nil, errors.Wrap(err, "list favorites")
	}
	return names, nil
}
