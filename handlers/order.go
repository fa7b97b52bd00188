package handlers

import (
	"time"

	"oh-crepe-api/middleware"
	"oh-crepe-api/models"
	"oh-crepe-api/pkg/resp"
	"oh-crepe-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderItemRequest struct {
	MenuItemID uint `json:"menuItemId" binding:"required,min=1"`
	Quantity   int  `json:"quantity" binding:"required,min=1,max=99"`
}

type PlaceOrderRequest struct {
	CustomerName    string               `json:"customerName" binding:"required,min=2"`
	CustomerPhone   string               `json:"customerPhone" binding:"required,min=10"`
	CustomerAddress string               `json:"customerAddress" binding:"required,min=10"`
	PaymentMethod   models.PaymentMethod `json:"paymentMethod" binding:"required,oneof=online cash-on-delivery"`
	Items           []OrderItemRequest   `json:"items" binding:"required,min=1,dive"`
	Notes           string               `json:"notes"`
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=pending preparing ready out-for-delivery delivered cancelled"`
	Note   string             `json:"note" binding:"max=500"`
}

type OrderHandler struct {
	orders *services.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders *services.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

// PlaceOrder creates an order from the request lines and empties the caller's cart.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	lines := make([]services.OrderLine, len(req.Items))
	for i, it := range req.Items {
		lines[i] = services.OrderLine{MenuItemID: it.MenuItemID, Quantity: it.Quantity}
	}
	order, err := h.orders.Place(c.Request.Context(), middleware.GetCaller(c), services.PlaceOrderInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		Items:           lines,
	})
	if err != nil {
		respondError(c, h.log, err, "An error occurred while creating the order")
		return
	}
	resp.Created(c, "Order created successfully", order)
}

// List returns the caller's orders, or every order for staff and admins.
// ?status= filters by status.
// parseSince reads the optional ?since= filter as a date or an RFC 3339 timestamp.
func parseSince(c *gin.Context) (time.Time, bool) {
	raw := c.Query("since")
	if raw == "" {
		return time.Time{}, true
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	resp.ValidationFailed(c, []resp.FieldError{{Field: "since", Message: "must be a date (YYYY-MM-DD) or an RFC 3339 timestamp"}})
	return time.Time{}, false
}

func (h *OrderHandler) List(c *gin.Context) {
	since, ok := parseSince(c)
	if !ok {
		return
	}
	status := models.OrderStatus(c.Query("status"))
	orders, err := h.orders.List(c.Request.Context(), middleware.GetCaller(c), status, since)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch orders")
		return
	}
	resp.OK(c, "Orders retrieved successfully", orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.Get(c.Request.Context(), middleware.GetCaller(c), id)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch order")
		return
	}
	resp.OK(c, "Order retrieved successfully", order)
}

func (h *OrderHandler) History(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	history, err := h.orders.History(c.Request.Context(), middleware.GetCaller(c), id)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch order history")
		return
	}
	resp.OK(c, "Order history retrieved successfully", history)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	change, err := h.orders.UpdateStatus(c.Request.Context(), middleware.GetCaller(c), id, req.Status, req.Note)
	if err != nil {
		respondError(c, h.log, err, "An error occurred while updating the order status")
		return
	}
	resp.OK(c, "Order status updated successfully", change)
}
