package services

import (
	"context"
	"errors"
	"fmt"

	"oh-crepe-api/models"
	"oh-crepe-api/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CartService struct {
	carts repository.CartRepository
	menu  repository.MenuRepository
	log   *zap.Logger
}

func NewCartService(carts repository.CartRepository, menu repository.MenuRepository, log *zap.Logger) *CartService {
	return &CartService{carts: carts, menu: menu, log: log}
}

type Cart struct {
	Items      []models.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
}

// Get returns the caller's cart priced at current menu prices.
func (s *CartService) Get(ctx context.Context, userID uint) (*Cart, error) {
	items, err := s.carts.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart := &Cart{Items: items, Subtotal: decimal.Zero}
	for _, it := range items {
		cart.TotalItems += it.Quantity
		cart.Subtotal = cart.Subtotal.Add(it.MenuItem.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return cart, nil
}

// Add puts quantity of a menu item in the cart, merging with an existing line.
func (s *CartService) Add(ctx context.Context, userID, menuItemID uint, quantity int) (*Cart, error) {
	if err := checkQuantity("quantity", quantity); err != nil {
		return nil, err
	}
	item, err := s.menu.GetByID(ctx, menuItemID)
	if err != nil {
		return nil, notFound(err, "Menu item", menuItemID)
	}
	if !item.Available {
		return nil, &UnavailableItemsError{Names: []string{item.Name}}
	}
	if _, err := s.carts.Add(ctx, userID, menuItemID, quantity, MaxLineQuantity); err != nil {
		if errors.Is(err, repository.ErrQuantityLimit) {
			return nil, &InvalidInputError{
				Field:   "quantity",
				Message: fmt.Sprintf("A cart line cannot hold more than %d of %s", MaxLineQuantity, item.Name),
			}
		}
		return nil, err
	}
	return s.Get(ctx, userID)
}

// SetQuantity replaces a line's quantity. Zero or less removes the line.
func (s *CartService) SetQuantity(ctx context.Context, userID, menuItemID uint, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return s.Remove(ctx, userID, menuItemID)
	}
	if err := checkQuantity("quantity", quantity); err != nil {
		return nil, err
	}
	ok, err := s.carts.SetQuantity(ctx, userID, menuItemID, quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Resource: "Cart item", ID: menuItemID}
	}
	return s.Get(ctx, userID)
}

func (s *CartService) Remove(ctx context.Context, userID, menuItemID uint) (*Cart, error) {
	ok, err := s.carts.Remove(ctx, userID, menuItemID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Resource: "Cart item", ID: menuItemID}
	}
	return s.Get(ctx, userID)
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.carts.Clear(ctx, userID)
}
