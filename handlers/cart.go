package handlers

import (
	"oh-crepe-api/middleware"
	"oh-crepe-api/pkg/resp"
	"oh-crepe-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AddCartItemRequest struct {
	MenuItemID uint `json:"menuItemId" binding:"required,min=1"`
	Quantity   int  `json:"quantity" binding:"omitempty,min=1,max=99"`
}

// SetCartQuantityRequest sets a line's quantity; zero removes the line.
type SetCartQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=99"`
}

type CartHandler struct {
	carts *services.CartService
	log   *zap.Logger
}

func NewCartHandler(carts *services.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, log: log}
}

func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.carts.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch cart")
		return
	}
	resp.OK(c, "Cart retrieved successfully", cart)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	cart, err := h.carts.Add(c.Request.Context(), middleware.GetUserID(c), req.MenuItemID, req.Quantity)
	if err != nil {
		respondError(c, h.log, err, "Failed to add item to cart")
		return
	}
	resp.OK(c, "Item added to cart", cart)
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	menuItemID, ok := parseID(c, "menuItemId")
	if !ok {
		return
	}
	var req SetCartQuantityRequest
	if !bindJSON(c, &req) {
		return
	}
	cart, err := h.carts.SetQuantity(c.Request.Context(), middleware.GetUserID(c), menuItemID, *req.Quantity)
	if err != nil {
		respondError(c, h.log, err, "Failed to update cart item")
		return
	}
	resp.OK(c, "Cart updated", cart)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	menuItemID, ok := parseID(c, "menuItemId")
	if !ok {
		return
	}
	cart, err := h.carts.Remove(c.Request.Context(), middleware.GetUserID(c), menuItemID)
	if err != nil {
		respondError(c, h.log, err, "Failed to remove cart item")
		return
	}
	resp.OK(c, "Item removed from cart", cart)
}

func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		respondError(c, h.log, err, "Failed to clear cart")
		return
	}
	resp.OK(c, "Cart cleared", nil)
}
