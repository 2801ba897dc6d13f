package repo

import (
	"context"

	"Pokedex/internal/cli/model"
)

// MirrorRepository определяет порт локальной копии групп и избранного.
// Сервер остаётся источником истины; зеркало нужно для команды history и
// работы без сети.
type MirrorRepository interface {
	// SaveGroup сохраняет созданную группу и возвращает её локальный id.
	SaveGroup(ctx context.Context, name string, members []string) (string, error)

	// ListGroups возвращает группы, новые первыми.
	ListGroups(ctx context.Context) ([]model.LocalGroup, error)

	// AddFavorite запоминает имя. Повторное добавление ничего не меняет.
	AddFavorite(ctx context.Context, name string) error

	// RemoveFavorite забывает имя. Отсутствие записи не ошибка.
	RemoveFavorite(ctx context.Context, name string) error

	// ListFavorites возвращает имена в алфавитном порядке.
	ListFavorites(ctx context.Context) ([]string, error)
}
