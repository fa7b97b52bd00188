package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"oh-crepe-api/models"
	"oh-crepe-api/repository"
	"oh-crepe-api/statemachine"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// DefaultDeliveryFee is added to every order total.
	DefaultDeliveryFee = "5.00"
	// DefaultDeliveryETA is how long after creation an order is expected to arrive.
	DefaultDeliveryETA = 45 * time.Minute
)

type OrderOptions struct {
	DeliveryFee decimal.Decimal
	DeliveryETA time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

type OrderService struct {
	orders      repository.OrderRepository
	menu        repository.MenuRepository
	carts       repository.CartRepository
	log         *zap.Logger
	deliveryFee decimal.Decimal
	deliveryETA time.Duration
	now         func() time.Time
}

func NewOrderService(orders repository.OrderRepository, menu repository.MenuRepository, carts repository.CartRepository, log *zap.Logger, opts OrderOptions) *OrderService {
	s := &OrderService{
		orders:      orders,
		menu:        menu,
		carts:       carts,
		log:         log,
		deliveryFee: opts.DeliveryFee,
		deliveryETA: opts.DeliveryETA,
		now:         opts.Now,
	}
	if s.deliveryETA <= 0 {
		s.deliveryETA = DefaultDeliveryETA
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

type OrderLine struct {
	MenuItemID uint
	Quantity   int
}

type PlaceOrderInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	PaymentMethod   models.PaymentMethod
	Notes           string
	Items           []OrderLine
}

// Place creates an order for the caller from the requested lines.
//
// Every menu item must exist and be available, otherwise nothing is written.
// Prices are read from the menu now and frozen on the line items. If writing
// the line items fails, the header is deleted again. Once the order is
// complete the caller's cart is emptied; a failure there is only logged.
func (s *OrderService) Place(ctx context.Context, caller Caller, in PlaceOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, &InvalidInputError{Field: "items", Message: "At least one item is required"}
	}
	if !in.PaymentMethod.Valid() {
		return nil, &InvalidInputError{Field: "paymentMethod", Message: "Invalid payment method"}
	}
	name, err := trimmedMin("customerName", in.CustomerName, 2)
	if err != nil {
		return nil, err
	}
	phone, err := trimmedMin("customerPhone", in.CustomerPhone, 10)
	if err != nil {
		return nil, err
	}
	address, err := trimmedMin("customerAddress", in.CustomerAddress, 10)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(in.Items))
	seen := make(map[uint]bool, len(in.Items))
	for _, line := range in.Items {
		if err := checkQuantity("items.quantity", line.Quantity); err != nil {
			return nil, err
		}
		if !seen[line.MenuItemID] {
			seen[line.MenuItemID] = true
			ids = append(ids, line.MenuItemID)
		}
	}

	found, err := s.menu.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to verify menu items: %w", err)
	}
	byID := make(map[uint]models.MenuItem, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}

	var missing []uint
	var unavailable []string
	for _, id := range ids {
		item, ok := byID[id]
		switch {
		case !ok:
			missing = append(missing, id)
		case !item.Available:
			unavailable = append(unavailable, item.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingItemsError{IDs: missing}
	}
	if len(unavailable) > 0 {
		return nil, &UnavailableItemsError{Names: unavailable}
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	total := decimal.Zero
	for _, line := range in.Items {
		menuItem := byID[line.MenuItemID]
		oi := models.OrderItem{
			MenuItemID:   menuItem.ID,
			MenuItemName: menuItem.Name,
			Quantity:     line.Quantity,
			Price:        menuItem.Price,
		}
		total = total.Add(oi.LineTotal())
		items = append(items, oi)
	}
	total = total.Add(s.deliveryFee)

	now := s.now()
	eta := now.Add(s.deliveryETA)
	order := &models.Order{
		UserID:                caller.ID,
		CustomerName:          name,
		CustomerPhone:         phone,
		CustomerAddress:       address,
		Status:                models.StatusPending,
		PaymentMethod:         in.PaymentMethod,
		PaymentStatus:         in.PaymentMethod.InitialPaymentStatus(),
		TotalAmount:           total,
		Notes:                 strings.TrimSpace(in.Notes),
		EstimatedDeliveryTime: &eta,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.orders.CreateHeader(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := s.orders.CreateItems(ctx, items); err != nil {
		s.log.Error("failed to create order items, rolling back order",
			zap.Uint("order_id", order.ID), zap.Error(err))
		if derr := s.orders.Delete(ctx, order.ID); derr != nil {
			s.log.Error("failed to roll back order",
				zap.Uint("order_id", order.ID), zap.Error(derr))
		}
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}
	order.Items = items

	s.recordHistory(ctx, &models.OrderStatusHistory{
		OrderID:   order.ID,
		ToStatus:  models.StatusPending,
		ChangedBy: caller.ID,
		Note:      "Order placed by customer",
	})

	if err := s.carts.Clear(ctx, caller.ID); err != nil {
		s.log.Warn("failed to clear cart after order",
			zap.Uint("user_id", caller.ID), zap.Uint("order_id", order.ID), zap.Error(err))
	}

	s.log.Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", caller.ID),
		zap.Int("lines", len(items)),
		zap.String("total", order.TotalAmount.StringFixed(2)))
	return order, nil
}

// scope restricts customers to their own orders.
func scope(caller Caller, status models.OrderStatus) repository.OrderFilter {
	filter := repository.OrderFilter{Status: status}
	if caller.IsCustomer() {
		filter.UserID = caller.ID
	}
	return filter
}

// List returns orders newest first. Customers only see their own; staff and
// admins see everything. A non-empty status and a non-zero since narrow the
// result.
func (s *OrderService) List(ctx context.Context, caller Caller, status models.OrderStatus, since time.Time) ([]models.Order, error) {
	if status != "" && !statemachine.IsValid(status) {
		return nil, &InvalidInputError{Field: "status", Message: "Invalid status"}
	}
	filter := scope(caller, status)
	filter.Since = since
	return s.orders.List(ctx, filter)
}

// Get returns one order. Another customer's order is reported as not found.
func (s *OrderService) Get(ctx context.Context, caller Caller, id uint) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id, scope(caller, ""))
	if err != nil {
		return nil, notFound(err, "Order", id)
	}
	return order, nil
}

func (s *OrderService) History(ctx context.Context, caller Caller, id uint) ([]models.OrderStatusHistory, error) {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return nil, err
	}
	return s.orders.History(ctx, id)
}

type StatusChange struct {
	ID             uint                `json:"id"`
	Status         models.OrderStatus  `json:"status"`
	PreviousStatus models.OrderStatus  `json:"previous_status"`
	Change         statemachine.Change `json:"change"`
	NextStatus     models.OrderStatus  `json:"next_status,omitempty"`
}

// UpdateStatus moves an order to status. Any known status is accepted from
// any state; setting the current status again only refreshes updated_at.
func (s *OrderService) UpdateStatus(ctx context.Context, caller Caller, id uint, status models.OrderStatus, note string) (*StatusChange, error) {
	if !statemachine.IsValid(status) {
		return nil, &InvalidInputError{Field: "status", Message: "Invalid status"}
	}

	order, err := s.orders.GetByID(ctx, id, repository.OrderFilter{})
	if err != nil {
		return nil, notFound(err, "Order", id)
	}
	if err := statemachine.CanTransition(order.Status, status); err != nil {
		return nil, &InvalidInputError{Field: "status", Message: err.Error()}
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	change := statemachine.Describe(order.Status, status)
	if note == "" {
		note = fmt.Sprintf("Status set by %s (%s)", caller.Role, change)
	}
	s.recordHistory(ctx, &models.OrderStatusHistory{
		OrderID:    id,
		FromStatus: order.Status,
		ToStatus:   status,
		ChangedBy:  caller.ID,
		Note:       note,
	})

	s.log.Info("order status updated",
		zap.Uint("order_id", id),
		zap.String("from", string(order.Status)),
		zap.String("to", string(status)),
		zap.String("change", string(change)),
		zap.Uint("by", caller.ID))
	result := &StatusChange{ID: id, Status: status, PreviousStatus: order.Status, Change: change}
	if next, ok := statemachine.NextInLifecycle(status); ok {
		result.NextStatus = next
	}
	return result, nil
}

func (s *OrderService) recordHistory(ctx context.Context, entry *models.OrderStatusHistory) {
	if err := s.orders.AddHistory(ctx, entry); err != nil {
		s.log.Warn("failed to record order status history",
			zap.Uint("order_id", entry.OrderID), zap.Error(err))
	}
}
