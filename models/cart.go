package models

import "time"

// CartItem is a pending line in a customer's cart. Rows go away with their
// user or menu item, and all of a user's rows are cleared once an order is placed.
type CartItem struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	MenuItemID uint      `json:"menu_item_id" gorm:"not null;index"`
	MenuItem   MenuItem  `json:"menu_item" gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}
