package services

import (
	"context"
	"errors"
	"strings"

	"oh-crepe-api/cache"
	"oh-crepe-api/models"
	"oh-crepe-api/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	menuAllKey        = "menu:all"
	menuAvailableKey  = "menu:available"
	menuCategoriesKey = "menu:categories"
)

type MenuService struct {
	menu  repository.MenuRepository
	cache cache.Cache
	log   *zap.Logger
}

func NewMenuService(menu repository.MenuRepository, c cache.Cache, log *zap.Logger) *MenuService {
	if c == nil {
		c = cache.Nop{}
	}
	return &MenuService{menu: menu, cache: c, log: log}
}

// List returns the whole menu ordered by category and name.
func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	return cached(ctx, s, menuAllKey, func() ([]models.MenuItem, error) {
		return s.menu.List(ctx, false)
	})
}

// ListAvailable returns only items that can be ordered right now.
func (s *MenuService) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	return cached(ctx, s, menuAvailableKey, func() ([]models.MenuItem, error) {
		return s.menu.List(ctx, true)
	})
}

func (s *MenuService) Categories(ctx context.Context) ([]string, error) {
	return cached(ctx, s, menuCategoriesKey, func() ([]string, error) {
		return s.menu.Categories(ctx)
	})
}

func (s *MenuService) Get(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, err := s.menu.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Menu item", id)
	}
	return item, nil
}

type MenuItemInput struct {
	Name            *string
	Description     *string
	Price           *decimal.Decimal
	Category        *string
	ImageURL        *string
	Available       *bool
	PreparationTime *int
}

func (s *MenuService) Create(ctx context.Context, in MenuItemInput) (*models.MenuItem, error) {
	if in.Name == nil || in.Price == nil || in.Category == nil {
		return nil, &InvalidInputError{Field: "name", Message: "name, price and category are required"}
	}
	name, err := trimmedMin("name", *in.Name, 2)
	if err != nil {
		return nil, err
	}
	category, err := trimmedMin("category", *in.Category, 2)
	if err != nil {
		return nil, err
	}
	item := &models.MenuItem{
		Name:            name,
		Price:           in.Price.Round(2),
		Category:        category,
		Available:       true,
		PreparationTime: models.DefaultPreparationTime,
	}
	if in.Description != nil {
		item.Description = strings.TrimSpace(*in.Description)
	}
	if in.ImageURL != nil {
		item.ImageURL = *in.ImageURL
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	if in.PreparationTime != nil {
		item.PreparationTime = *in.PreparationTime
	}
	if err := s.menu.Create(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info("menu item created", zap.Uint("menu_item_id", item.ID), zap.String("name", item.Name))
	return item, nil
}

// Update applies a partial update. Fields left nil are unchanged.
func (s *MenuService) Update(ctx context.Context, id uint, in MenuItemInput) (*models.MenuItem, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Name != nil {
		name, err := trimmedMin("name", *in.Name, 2)
		if err != nil {
			return nil, err
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		fields["price"] = in.Price.Round(2)
	}
	if in.Category != nil {
		category, err := trimmedMin("category", *in.Category, 2)
		if err != nil {
			return nil, err
		}
		fields["category"] = category
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if in.Available != nil {
		fields["available"] = *in.Available
	}
	if in.PreparationTime != nil {
		fields["preparation_time"] = *in.PreparationTime
	}
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	if err := s.menu.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.Get(ctx, id)
}

// ToggleAvailability flips the availability flag and returns the updated item.
func (s *MenuService) ToggleAvailability(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.menu.SetAvailability(ctx, id, !item.Available); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info("menu item availability toggled",
		zap.Uint("menu_item_id", id),
		zap.Bool("available", !item.Available))
	return s.Get(ctx, id)
}

// Delete removes a menu item. Carts holding it lose the line; past orders keep
// their snapshot.
func (s *MenuService) Delete(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.menu.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info("menu item deleted", zap.Uint("menu_item_id", id))
	return item, nil
}

func (s *MenuService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, menuAllKey, menuAvailableKey, menuCategoriesKey); err != nil {
		s.log.Warn("failed to invalidate menu cache", zap.Error(err))
	}
}

func cached[T any](ctx context.Context, s *MenuService, key string, load func() (T, error)) (T, error) {
	var out T
	err := s.cache.GetJSON(ctx, key, &out)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("menu cache read failed", zap.String("key", key), zap.Error(err))
	}

	out, err = load()
	if err != nil {
		return out, err
	}
	if err := s.cache.SetJSON(ctx, key, out); err != nil {
		s.log.Warn("menu cache write failed", zap.String("key", key), zap.Error(err))
	}
	return out, nil
}
