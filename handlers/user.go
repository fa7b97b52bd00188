package handlers

import (
	"oh-crepe-api/middleware"
	"oh-crepe-api/models"
	"oh-crepe-api/pkg/resp"
	"oh-crepe-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CreateUserRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Name     string          `json:"name" binding:"required,min=2"`
	Phone    string          `json:"phone" binding:"omitempty,min=7,max=20"`
	Address  string          `json:"address"`
	Role     models.UserRole `json:"role" binding:"omitempty,oneof=customer staff admin"`
}

// UpdateRoleRequest leaves role checking to the service so a self-change is
// refused whatever the payload.
type UpdateRoleRequest struct {
	Role models.UserRole `json:"role"`
}

type UserHandler struct {
	users *services.UserService
	log   *zap.Logger
}

func NewUserHandler(users *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// List returns all users, optionally filtered with ?role=.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), models.UserRole(c.Query("role")))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch users")
		return
	}
	resp.OK(c, "Users retrieved successfully", users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch user")
		return
	}
	resp.OK(c, "User retrieved successfully", user)
}

// Create opens a staff (default) or admin account.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.users.CreateStaff(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
	}, req.Role)
	if err != nil {
		respondError(c, h.log, err, "An error occurred while creating the user")
		return
	}
	resp.Created(c, "User created successfully", user)
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateRoleRequest
	// a malformed body still reaches the self-change check with an empty role
	_ = c.ShouldBindJSON(&req)
	change, err := h.users.UpdateRole(c.Request.Context(), middleware.GetCaller(c), id, req.Role)
	if err != nil {
		respondError(c, h.log, err, "An error occurred while updating the user role")
		return
	}
	resp.OK(c, "User role updated successfully", change)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.Delete(c.Request.Context(), middleware.GetCaller(c), id)
	if err != nil {
		respondError(c, h.log, err, "An error occurred while deleting the user")
		return
	}
	resp.OK(c, "User deleted successfully", gin.H{"id": user.ID, "email": user.Email})
}

func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.users.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch statistics")
		return
	}
	resp.OK(c, "Statistics retrieved successfully", stats)
}
