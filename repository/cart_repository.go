package repository

import (
	"context"
	"errors"

	"oh-crepe-api/models"

	"gorm.io/gorm"
)

// ErrQuantityLimit is returned when merging into a cart line would exceed its cap.
var ErrQuantityLimit = errors.New("cart line quantity limit exceeded")

type CartRepository interface {
	List(ctx context.Context, userID uint) ([]models.CartItem, error)
	// Add merges quantity into an existing line for the same menu item.
	// The resulting line may not exceed limit.
	Add(ctx context.Context, userID, menuItemID uint, quantity, limit int) (*models.CartItem, error)
	SetQuantity(ctx context.Context, userID, menuItemID uint, quantity int) (bool, error)
	Remove(ctx context.Context, userID, menuItemID uint) (bool, error)
	Clear(ctx context.Context, userID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) List(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("MenuItem").
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&items).Error
	return items, err
}

func (r *cartRepository) Add(ctx context.Context, userID, menuItemID uint, quantity, limit int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).First(&item).Error
		if err == nil {
			if item.Quantity > limit-quantity {
				return ErrQuantityLimit
			}
			item.Quantity += quantity
			return tx.Model(&item).Update("quantity", item.Quantity).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		item = models.CartItem{UserID: userID, MenuItemID: menuItemID, Quantity: quantity}
		return tx.Omit("MenuItem").Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, userID, menuItemID uint, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Update("quantity", quantity)
	return res.RowsAffected > 0, res.Error
}

func (r *cartRepository) Remove(ctx context.Context, userID, menuItemID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Delete(&models.CartItem{})
	return res.RowsAffected > 0, res.Error
}

func (r *cartRepository) Clear(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
