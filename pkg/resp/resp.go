package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{"message": message, "data": data})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, gin.H{"message": message, "data": data})
}

// Error writes the error envelope and aborts the chain.
func Error(c *gin.Context, status int, title, message string, details []FieldError) {
	ErrorWith(c, status, title, message, details, nil)
}

// ErrorWith is Error with extra top-level fields in the envelope.
func ErrorWith(c *gin.Context, status int, title, message string, details []FieldError, extra gin.H) {
	body := gin.H{"error": title, "message": message}
	if len(details) > 0 {
		body["details"] = details
	}
	for k, v := range extra {
		body[k] = v
	}
	c.AbortWithStatusJSON(status, body)
}

func BadRequest(c *gin.Context, title, message string) {
	Error(c, http.StatusBadRequest, title, message, nil)
}

func ValidationFailed(c *gin.Context, details []FieldError) {
	Error(c, http.StatusBadRequest, "Validation failed", "One or more fields are invalid", details)
}

func Unauthorized(c *gin.Context, title, message string) {
	Error(c, http.StatusUnauthorized, title, message, nil)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, "Forbidden", message, nil)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, "Not found", message, nil)
}

func Conflict(c *gin.Context, title, message string) {
	Error(c, http.StatusConflict, title, message, nil)
}

func ServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, "Internal server error", message, nil)
}
