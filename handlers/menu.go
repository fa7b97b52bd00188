package handlers

import (
	"oh-crepe-api/pkg/resp"
	"oh-crepe-api/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreateMenuItemRequest struct {
	Name            string           `json:"name" binding:"required,min=2"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price" binding:"required"`
	Category        string           `json:"category" binding:"required,min=2"`
	ImageURL        *string          `json:"image_url" binding:"omitempty,url"`
	Available       *bool            `json:"available"`
	PreparationTime *int             `json:"preparation_time" binding:"omitempty,min=1"`
}

// UpdateMenuItemRequest is a partial update; absent fields are left unchanged.
type UpdateMenuItemRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=2"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	Category        *string          `json:"category" binding:"omitempty,min=2"`
	ImageURL        *string          `json:"image_url" binding:"omitempty,url"`
	Available       *bool            `json:"available"`
	PreparationTime *int             `json:"preparation_time" binding:"omitempty,min=1"`
}

type MenuHandler struct {
	menu *services.MenuService
	log  *zap.Logger
}

func NewMenuHandler(menu *services.MenuService, log *zap.Logger) *MenuHandler {
	return &MenuHandler{menu: menu, log: log}
}

func validPrice(c *gin.Context, price *decimal.Decimal) bool {
	if price != nil && price.IsNegative() {
		resp.ValidationFailed(c, []resp.FieldError{{Field: "price", Message: "Price must be a positive number"}})
		return false
	}
	return true
}

func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.menu.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch menu items")
		return
	}
	resp.OK(c, "Menu items retrieved successfully", items)
}

func (h *MenuHandler) ListAvailable(c *gin.Context) {
	items, err := h.menu.ListAvailable(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch available menu items")
		return
	}
	resp.OK(c, "Available menu items retrieved successfully", items)
}

func (h *MenuHandler) Categories(c *gin.Context) {
	categories, err := h.menu.Categories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch categories")
		return
	}
	resp.OK(c, "Categories retrieved successfully", categories)
}

func (h *MenuHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.menu.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch menu item")
		return
	}
	resp.OK(c, "Menu item retrieved successfully", item)
}

func (h *MenuHandler) Create(c *gin.Context) {
	var req CreateMenuItemRequest
	if !bindJSON(c, &req) || !validPrice(c, req.Price) {
		return
	}
	item, err := h.menu.Create(c.Request.Context(), services.MenuItemInput{
		Name:            &req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        &req.Category,
		ImageURL:        req.ImageURL,
		Available:       req.Available,
		PreparationTime: req.PreparationTime,
	})
	if err != nil {
		respondError(c, h.log, err, "An error occurred while creating the menu item")
		return
	}
	resp.Created(c, "Menu item created successfully", item)
}

func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateMenuItemRequest
	if !bindJSON(c, &req) || !validPrice(c, req.Price) {
		return
	}
	item, err := h.menu.Update(c.Request.Context(), id, services.MenuItemInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
		Available:       req.Available,
		PreparationTime: req.PreparationTime,
	})
	if err != nil {
		respondError(c, h.log, err, "An error occurred while updating the menu item")
		return
	}
	resp.OK(c, "Menu item updated successfully", item)
}

func (h *MenuHandler) ToggleAvailability(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.menu.ToggleAvailability(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "An error occurred while updating availability")
		return
	}
	msg := "Menu item is now unavailable"
	if item.Available {
		msg = "Menu item is now available"
	}
	resp.OK(c, msg, item)
}

func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.menu.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "An error occurred while deleting the menu item")
		return
	}
	resp.OK(c, "Menu item deleted successfully", gin.H{"id": item.ID, "name": item.Name})
}
