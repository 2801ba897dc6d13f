package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"Pokedex/internal/cli/errs"
	"Pokedex/internal/cli/repo"
	"Pokedex/internal/model"
)

// GroupService описывает юзкейс-уровень работы с группами.
type GroupService interface {
	// Create проверяет данные и создаёт группу одним запросом.
	// Ошибка валидации возвращается до любого сетевого вызова.
	Create(ctx context.Context, name string, items []model.Item) (model.Group, error)

	// List returns the groups stored on the server.
	List(ctx context.Context) ([]model.Group, error)

	// Delete removes group id on the server.
	Delete(ctx context.Context, id int) error
}

type groupService struct {
	api    GroupsGateway
	mirror repo.MirrorRepository
	logger *zap.SugaredLogger
}

// NewGroupService создаёт сервис групп. mirror может быть nil.
func NewGroupService(api GroupsGateway, mirror repo.MirrorRepository, logger *zap.SugaredLogger) GroupService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &groupService{api: api, mirror: mirror, logger: logger}
}

// ValidateGroup returns the trimmed name and the members deduplicated by name.
func ValidateGroup(name string, items []model.Item) (string, []model.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, errs.Validation("group name is required", "enter a group name")
	}
	if utf8.RuneCountInString(name) > model.GroupNameMaxLen {
		return "", nil, errs.Validation("group name is too long",
			"use at most 50 characters")
	}
	members := lo.UniqBy(lo.Filter(items, func(it model.Item, _ int) bool { return it.Key() != "" }), model.Item.Key)
	if len(members) == 0 {
		return "", nil, errs.Validation("group has no pokemon", "select at least one pokemon")
	}
	return name, members, nil
}

func (s *groupService) Create(ctx context.Context, name string, items []model.Item) (model.Group, error) {
	name, members, err := ValidateGroup(name, items)
	if err != nil {
		return model.Group{}, err
	}
	g, err := s.api.CreateGroup(ctx, model.GroupRequest{Name: name, Pokemons: members})
	if err != nil {
		return model.Group{}, errors.Wrapf(err, "create group %q", name)
	}
	if g.Name == "" {
		g.Name = name
	}
	if len(g.Pokemons) == 0 {
		g.Pokemons = members
	}
	s.logger.Infow("group created", "id", g.ID, "name", name, "size", len(members))

	if s.mirror != nil {
		names := lo.Map(members, func(it model.Item, _ int) string { return it.Key() })
		if _, err := s.mirror.SaveGroup(ctx, name, names); err != nil {
			s.logger.Warnw("mirror group failed", "name", name, "error", err)
		}
	}
	return g, nil
}

func (s *groupService) List(ctx context.Context) ([]model.Group, error) {
	groups, err := s.api.Groups(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load groups")
	}
	return groups, nil
}

func (s *groupService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return errs.Validation("invalid group id", "use the id shown by the groups command")
	}
	if err := s.api.DeleteGroup(ctx, id); err != nil {
		return errors.Wrapf(err, "delete group %d", id)
	}
	s.logger.Infow("group deleted", "id", id)
	return nil
}
