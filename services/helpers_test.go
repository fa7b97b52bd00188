package services

import (
	"context"
	"testing"

	"oh-crepe-api/config"
	"oh-crepe-api/models"
	"oh-crepe-api/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	users  repository.UserRepository
	menu   repository.MenuRepository
	orders repository.OrderRepository
	carts  repository.CartRepository

	customer Caller
	staff    Caller
	admin    Caller
}

// newFixture opens a seeded in-memory database.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := config.OpenDB(config.DatabaseConfig{Path: config.MemoryDB, SeedDemoData: true}, zap.NewNop())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	f := &fixture{
		db:     db,
		users:  repository.NewUserRepository(db),
		menu:   repository.NewMenuRepository(db),
		orders: repository.NewOrderRepository(db),
		carts:  repository.NewCartRepository(db),
	}
	f.customer = f.caller(t, "customer@ofos.com")
	f.staff = f.caller(t, "staff@ofos.com")
	f.admin = f.caller(t, "admin@ofos.com")
	return f
}

func (f *fixture) caller(t *testing.T, email string) Caller {
	t.Helper()
	u, err := f.users.GetByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("load %s: %v", email, err)
	}
	return Caller{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// addCustomer registers another customer account.
func (f *fixture) addCustomer(t *testing.T, email string) Caller {
	t.Helper()
	u, err := createUser(context.Background(), f.users, RegisterInput{
		Email: email, Password: "secret1", Name: "Other Customer",
	}, models.RoleCustomer)
	if err != nil {
		t.Fatalf("create %s: %v", email, err)
	}
	return Caller{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func (f *fixture) menuItem(t *testing.T, name string) models.MenuItem {
	t.Helper()
	var item models.MenuItem
	if err := f.db.Where("name = ?", name).First(&item).Error; err != nil {
		t.Fatalf("menu item %q: %v", name, err)
	}
	return item
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func (f *fixture) orderService() *OrderService {
	return NewOrderService(f.orders, f.menu, f.carts, zap.NewNop(), OrderOptions{
		DeliveryFee: decimal.RequireFromString(DefaultDeliveryFee),
	})
}

func deliveryInput(lines ...OrderLine) PlaceOrderInput {
	return PlaceOrderInput{
		CustomerName:    "John Customer",
		CustomerPhone:   "09123456789",
		CustomerAddress: "123 Main St, Quezon City",
		PaymentMethod:   models.PaymentCashOnDelivery,
		Items:           lines,
	}
}
