package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func TestCart_AddMergesAndPrices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewCartService(f.carts, f.menu, zap.NewNop())
	butter := f.menuItem(t, "Classic Butter & Sugar Crêpe") // 110
	berry := f.menuItem(t, "Berry Blast Crêpe")             // 180

	if _, err := svc.Add(ctx, f.customer.ID, butter.ID, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(ctx, f.customer.ID, berry.ID, 1); err != nil {
		t.Fatal(err)
	}
	cart, err := svc.Add(ctx, f.customer.ID, butter.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 2 || cart.TotalItems != 4 {
		t.Fatalf("cart = %d lines, %d items", len(cart.Items), cart.TotalItems)
	}
	if want := decimal.RequireFromString("510"); !cart.Subtotal.Equal(want) {
		t.Errorf("subtotal = %s, want %s", cart.Subtotal, want)
	}
	if cart.Items[0].MenuItem.Name != butter.Name {
		t.Errorf("menu item not loaded on cart line: %+v", cart.Items[0])
	}
}

func TestCart_SetQuantityAndRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewCartService(f.carts, f.menu, zap.NewNop())
	apple := f.menuItem(t, "Cinnamon Apple Crêpe")

	if _, err := svc.Add(ctx, f.customer.ID, apple.ID, 1); err != nil {
		t.Fatal(err)
	}
	cart, err := svc.SetQuantity(ctx, f.customer.ID, apple.ID, 5)
	if err != nil {
		t.Fatal(err)
	}
	if cart.TotalItems != 5 {
		t.Errorf("total items = %d, want 5", cart.TotalItems)
	}
	cart, err = svc.SetQuantity(ctx, f.customer.ID, apple.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 0 || !cart.Subtotal.IsZero() {
		t.Errorf("quantity 0 should remove the line: %+v", cart)
	}
	if _, err := svc.Remove(ctx, f.customer.ID, apple.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("remove missing line: got %v", err)
	}
}

func TestCart_RejectsUnknownAndUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewCartService(f.carts, f.menu, zap.NewNop())
	nutella := f.menuItem(t, "Nutella Dream Crêpe")
	if err := f.menu.SetAvailability(ctx, nutella.ID, false); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Add(ctx, f.customer.ID, 31337, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown item: got %v", err)
	}
	var unavailable *UnavailableItemsError
	if _, err := svc.Add(ctx, f.customer.ID, nutella.ID, 1); !errors.As(err, &unavailable) {
		t.Errorf("unavailable item: got %v", err)
	}
	var invalid *InvalidInputError
	if _, err := svc.Add(ctx, f.customer.ID, nutella.ID, 0); !errors.As(err, &invalid) {
		t.Errorf("zero quantity: got %v", err)
	}
}

func TestCart_CapsLineQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewCartService(f.carts, f.menu, zap.NewNop())
	butter := f.menuItem(t, "Classic Butter & Sugar Crêpe")

	var invalid *InvalidInputError
	if _, err := svc.Add(ctx, f.customer.ID, butter.ID, MaxLineQuantity+1); !errors.As(err, &invalid) {
		t.Errorf("oversized add: got %v", err)
	}
	if _, err := svc.Add(ctx, f.customer.ID, butter.ID, MaxLineQuantity); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(ctx, f.customer.ID, butter.ID, 1); !errors.As(err, &invalid) {
		t.Errorf("merge past the cap: got %v", err)
	}
	if _, err := svc.SetQuantity(ctx, f.customer.ID, butter.ID, MaxLineQuantity+1); !errors.As(err, &invalid) {
		t.Errorf("set past the cap: got %v", err)
	}

	cart, err := svc.Get(ctx, f.customer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if cart.TotalItems != MaxLineQuantity {
		t.Errorf("line changed by rejected updates: %d items", cart.TotalItems)
	}
	if want := butter.Price.Mul(decimal.NewFromInt(MaxLineQuantity)); !cart.Subtotal.Equal(want) {
		t.Errorf("subtotal = %s, want %s", cart.Subtotal, want)
	}
}
