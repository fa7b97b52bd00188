package repository

import (
	"context"
	"time"

	"oh-crepe-api/models"

	"gorm.io/gorm"
)

// OrderFilter narrows order listings. Zero values mean no restriction.
type OrderFilter struct {
	UserID uint
	Status models.OrderStatus
	Since  time.Time
}

type OrderRepository interface {
	// CreateHeader inserts the order row only; its items are written separately.
	CreateHeader(ctx context.Context, order *models.Order) error
	CreateItems(ctx context.Context, items []models.OrderItem) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint, filter OrderFilter) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error
	AddHistory(ctx context.Context, entry *models.OrderStatusHistory) error
	History(ctx context.Context, orderID uint) ([]models.OrderStatusHistory, error)
	Count(ctx context.Context) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateHeader(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("Items", "StatusHistory").Create(order).Error
}

// CreateItems inserts line items one by one and stops at the first failure.
func (r *orderRepository) CreateItems(ctx context.Context, items []models.OrderItem) error {
	for i := range items {
		if err := r.db.WithContext(ctx).Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the order; items and history follow through ON DELETE CASCADE.
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Order{}, id).Error
}

func (r *orderRepository) scoped(ctx context.Context, filter OrderFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id")
	})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if !filter.Since.IsZero() {
		query = query.Where("created_at >= ?", filter.Since)
	}
	return query
}

// GetByID returns the order with its items. When filter.UserID is set, an
// order owned by somebody else is reported as not found.
func (r *orderRepository) GetByID(ctx context.Context, id uint, filter OrderFilter) (*models.Order, error) {
	var order models.Order
	if err := r.scoped(ctx, filter).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	var orders []models.Order
	err := r.scoped(ctx, filter).Order("created_at desc, id desc").Find(&orders).Error
	return orders, err
}

// UpdateStatus sets the status and always refreshes updated_at, even when the
// status is unchanged.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *orderRepository) AddHistory(ctx context.Context, entry *models.OrderStatusHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *orderRepository) History(ctx context.Context, orderID uint) ([]models.OrderStatusHistory, error) {
	var entries []models.OrderStatusHistory
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at, id").
		Find(&entries).Error
	return entries, err
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&n).Error
	return n, err
}
