package services

import (
	"context"
	"errors"
	"testing"

	"oh-crepe-api/models"

	"go.uber.org/zap"
)

func newUserService(f *fixture) *UserService {
	return NewUserService(f.users, f.orders, f.menu, zap.NewNop())
}

func TestUpdateRole_SelfRejected(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)

	for _, role := range []models.UserRole{models.RoleCustomer, models.RoleAdmin, "", "superuser"} {
		if _, err := svc.UpdateRole(context.Background(), f.admin, f.admin.ID, role); !errors.Is(err, ErrSelfRoleChange) {
			t.Errorf("role %q: got %v, want ErrSelfRoleChange", role, err)
		}
	}
	u, err := f.users.GetByID(context.Background(), f.admin.ID)
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != models.RoleAdmin {
		t.Errorf("admin role changed to %s", u.Role)
	}
}

func TestUpdateRole_ReturnsPreviousRole(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)

	change, err := svc.UpdateRole(context.Background(), f.admin, f.customer.ID, models.RoleStaff)
	if err != nil {
		t.Fatal(err)
	}
	if change.PreviousRole != models.RoleCustomer || change.Role != models.RoleStaff {
		t.Errorf("unexpected change %+v", change)
	}

	var invalid *InvalidInputError
	if _, err := svc.UpdateRole(context.Background(), f.admin, f.customer.ID, "superuser"); !errors.As(err, &invalid) {
		t.Errorf("invalid role: got %v", err)
	}
	if _, err := svc.UpdateRole(context.Background(), f.admin, 4040, models.RoleStaff); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user: got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newUserService(f)

	if _, err := svc.Delete(ctx, f.admin, f.admin.ID); !errors.Is(err, ErrSelfDelete) {
		t.Errorf("self delete: got %v", err)
	}

	// a user with only a cart can go; the cart goes with them
	other := f.addCustomer(t, "cart-only@example.com")
	lemon := f.menuItem(t, "Lemon Zest & Sugar Crêpe")
	if _, err := f.carts.Add(ctx, other.ID, lemon.ID, 1, MaxLineQuantity); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Delete(ctx, f.admin, other.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := f.count(t, &models.CartItem{}); n != 0 {
		t.Errorf("cart items not cascaded: %d", n)
	}

	// a user with orders is kept
	if _, err := f.orderService().Place(ctx, f.customer, deliveryInput(OrderLine{MenuItemID: lemon.ID, Quantity: 1})); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Delete(ctx, f.admin, f.customer.ID); !errors.Is(err, ErrUserHasOrders) {
		t.Errorf("delete customer with orders: got %v", err)
	}
}

func TestCreateStaffAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newUserService(f)

	user, err := svc.CreateStaff(ctx, RegisterInput{Email: "Chef@OFOS.com", Password: "secret1", Name: "Chef"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if user.Role != models.RoleStaff || user.Email != "chef@ofos.com" {
		t.Errorf("unexpected user %+v", user)
	}
	if _, err := svc.CreateStaff(ctx, RegisterInput{Email: "chef@ofos.com", Password: "secret1", Name: "Chef"}, models.RoleAdmin); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email: got %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := UserStats{Customers: 1, Staff: 2, Admins: 1, TotalUsers: 4, TotalOrders: 0, AvailableItems: 9}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}

	staff, err := svc.List(ctx, models.RoleStaff)
	if err != nil {
		t.Fatal(err)
	}
	if len(staff) != 2 {
		t.Errorf("expected 2 staff, got %d", len(staff))
	}
}
