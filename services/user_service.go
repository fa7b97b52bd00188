package services

import (
	"context"

	"oh-crepe-api/models"
	"oh-crepe-api/repository"

	"go.uber.org/zap"
)

type UserService struct {
	users  repository.UserRepository
	orders repository.OrderRepository
	menu   repository.MenuRepository
	log    *zap.Logger
}

func NewUserService(users repository.UserRepository, orders repository.OrderRepository, menu repository.MenuRepository, log *zap.Logger) *UserService {
	return &UserService{users: users, orders: orders, menu: menu, log: log}
}

func (s *UserService) List(ctx context.Context, role models.UserRole) ([]models.User, error) {
	if role != "" && !role.Valid() {
		return nil, &InvalidInputError{Field: "role", Message: "Invalid role"}
	}
	return s.users.List(ctx, role)
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User", id)
	}
	return user, nil
}

// CreateStaff lets an admin open an account with an elevated role.
func (s *UserService) CreateStaff(ctx context.Context, in RegisterInput, role models.UserRole) (*models.User, error) {
	if role == "" {
		role = models.RoleStaff
	}
	if !role.Valid() {
		return nil, &InvalidInputError{Field: "role", Message: "Invalid role"}
	}
	user, err := createUser(ctx, s.users, in, role)
	if err != nil {
		return nil, err
	}
	s.log.Info("account created by admin", zap.Uint("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

type RoleChange struct {
	ID           uint            `json:"id"`
	Role         models.UserRole `json:"role"`
	PreviousRole models.UserRole `json:"previousRole"`
}

// UpdateRole changes another user's role. The new role takes effect at their
// next login since issued tokens keep the old claim.
func (s *UserService) UpdateRole(ctx context.Context, caller Caller, id uint, role models.UserRole) (*RoleChange, error) {
	if id == caller.ID {
		return nil, ErrSelfRoleChange
	}
	if !role.Valid() {
		return nil, &InvalidInputError{Field: "role", Message: "Invalid role"}
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	s.log.Info("user role updated",
		zap.Uint("user_id", id),
		zap.String("from", string(user.Role)),
		zap.String("to", string(role)),
		zap.Uint("by", caller.ID))
	return &RoleChange{ID: id, Role: role, PreviousRole: user.Role}, nil
}

// Delete removes another user and their cart. Users with orders are kept.
func (s *UserService) Delete(ctx context.Context, caller Caller, id uint) (*models.User, error) {
	if id == caller.ID {
		return nil, ErrSelfDelete
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrUserHasOrders
		}
		return nil, err
	}
	s.log.Info("user deleted", zap.Uint("user_id", id), zap.Uint("by", caller.ID))
	return user, nil
}

type UserStats struct {
	Customers      int64 `json:"customers"`
	Staff          int64 `json:"staff"`
	Admins         int64 `json:"admins"`
	TotalUsers     int64 `json:"total_users"`
	TotalOrders    int64 `json:"total_orders"`
	AvailableItems int64 `json:"available_items"`
}

func (s *UserService) Stats(ctx context.Context) (*UserStats, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	available, err := s.menu.CountAvailable(ctx)
	if err != nil {
		return nil, err
	}
	stats := &UserStats{
		Customers:      byRole[models.RoleCustomer],
		Staff:          byRole[models.RoleStaff],
		Admins:         byRole[models.RoleAdmin],
		TotalOrders:    orders,
		AvailableItems: available,
	}
	for _, n := range byRole {
		stats.TotalUsers += n
	}
	return stats, nil
}
