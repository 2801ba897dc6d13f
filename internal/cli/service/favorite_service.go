package service

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"Pokedex/internal/cli/repo"
	"Pokedex/internal/model"
)

// FavoriteService описывает юзкейс-уровень работы с избранным.
type FavoriteService interface {
	// Toggle переключает избранное для it и возвращает подтверждённую сервером отметку.
	// При ошибке локальное состояние менять нельзя.
	Toggle(ctx context.Context, it model.Item) (bool, error)

	// List возвращает избранных покемонов с их отметкой.
	List(ctx context.Context) ([]model.Item, error)

	// Marks returns normalized name -> mark for every valid favorite record.
	Marks(ctx context.Context) (map[string]bool, error)
}

type favoriteService struct {
	api    FavoritesGateway
	mirror repo.MirrorRepository
	logger *zap.SugaredLogger
}

// NewFavoriteService создаёт сервис избранного. mirror может быть nil.
func NewFavoriteService(api FavoritesGateway, mirror repo.MirrorRepository, logger *zap.SugaredLogger) FavoriteService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &favoriteService{api: api, mirror: mirror, logger: logger}
}

// Toggle: если запись есть, переключаем по id, иначе создаём; затем читаем обратно.
func (s *favoriteService) Toggle(ctx context.Context, it model.Item) (bool, error) {
	key := it.Key()
	if key == "" {
		return false, errors.New("favorite: empty pokemon name")
	}
	favs, err := s.api.Favorites(ctx)
	if err != nil {
		return false, errors.Wrap(err, "load favorites")
	}
	rec, found := lo.Find(favs, func(f model.Favorite) bool { return f.ItemName() == key })
	if found {
		err = s.api.ToggleFavorite(ctx, rec.ID)
	} else {
		err = s.api.AddFavorite(ctx, it)
	}
	if err != nil {
		return false, errors.Wrapf(err, "toggle favorite %s", key)
	}

	marks, err := s.Marks(ctx)
	if err != nil {
		return false, errors.Wrap(err, "read back favorites")
	}
	mark := marks[key]
	s.logger.Infow("favorite toggled", "name", key, "mark", mark)
	s.record(ctx, key, mark)
	return mark, nil
}

// record обновляет локальное зеркало; его ошибки не влияют на результат.
func (s *favoriteService) record(ctx context.Context, name string, mark bool) {
	if s.mirror == nil {
		return
	}
	var err error
	if mark {
		err = s.mirror.AddFavorite(ctx, name)
	} else {
		err = s.mirror.RemoveFavorite(ctx, name)
	}
	if err != nil {
		s.logger.Warnw("mirror favorite failed", "name", name, "error", err)
	}
}

func (s *favoriteService) List(ctx context.Context) ([]model.Item, error) {
	favs, err := s.api.Favorites(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load favorites")
	}
	return lo.FilterMap(favs, func(f model.Favorite, _ int) (model.Item, bool) {
		if f.ItemName() == "" {
			return model.Item{}, false
		}
		it := *f.Pokemons
		it.Mark = f.Mark
		return it, true
	}), nil
}

func (s *favoriteService) Marks(ctx context.Context) (map[string]bool, error) {
	favs, err := s.api.Favorites(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(favs))
	for _, f := range favs {
		if name := f.ItemName(); name != "" {
			out[name] = out[name] || f.Mark
		}
	}
	return out, nil
}
