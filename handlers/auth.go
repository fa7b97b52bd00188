package handlers

import (
	"oh-crepe-api/middleware"
	"oh-crepe-api/pkg/resp"
	"oh-crepe-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,min=2"`
	Phone    string `json:"phone" binding:"omitempty,min=7,max=20"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyRequest struct {
	Token string `json:"token"`
}

type AuthHandler struct {
	auth   *services.AuthService
	tokens *middleware.Auth
	log    *zap.Logger
}

func NewAuthHandler(auth *services.AuthService, tokens *middleware.Auth, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, log: log}
}

// Register creates a customer account and logs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.auth.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		respondError(c, h.log, err, "An error occurred while creating your account")
		return
	}
	resp.Created(c, "Registration successful", result)
}

// Login authenticates a user and returns a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err, "An error occurred while logging in")
		return
	}
	resp.OK(c, "Login successful", result)
}

// Verify decodes a token from the Authorization header, or from the body when
// the header is absent, and reports the identity it carries.
func (h *AuthHandler) Verify(c *gin.Context) {
	token, err := middleware.BearerToken(c)
	if err != nil {
		var req VerifyRequest
		_ = c.ShouldBindJSON(&req)
		token = req.Token
	}
	if token == "" {
		resp.Unauthorized(c, "No token provided", "Authorization token is required")
		return
	}
	claims, err := h.tokens.ParseToken(token)
	if err != nil {
		resp.Unauthorized(c, "Invalid token", "Token is not valid or has expired")
		return
	}
	data := gin.H{
		"valid": true,
		"user": gin.H{
			"id":    claims.UserID,
			"email": claims.Email,
			"name":  claims.Name,
			"role":  claims.Role,
		},
	}
	if claims.ExpiresAt != nil {
		data["expires_at"] = claims.ExpiresAt.Time
	}
	resp.OK(c, "Token is valid", data)
}

// Me returns the caller's stored profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Profile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch profile")
		return
	}
	resp.OK(c, "Profile retrieved successfully", user)
}
