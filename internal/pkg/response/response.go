package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint returns. The frontend keys
// off the success flag, so errors carry success=false plus a message
// rather than a bare error string.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// PaginatedResponse wraps a list payload with paging metadata.
type PaginatedResponse struct {
	Success     bool        `json:"success"`
	Data        interface{} `json:"data"`
	TotalPages  int64       `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
	Total       int64       `json:"total"`
}

// Success sends a 200 OK with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// SuccessMessage sends a 200 OK with data and a human-readable message.
func SuccessMessage(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Message: message})
}

// Created sends a 201 Created.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// CreatedMessage sends a 201 Created with a message.
func CreatedMessage(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data, Message: message})
}

// Paginated sends a list with totalPages/currentPage/total metadata.
func Paginated(c *gin.Context, data interface{}, total int64, limit, page int) {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Success:     true,
		Data:        data,
		TotalPages:  totalPages,
		CurrentPage: page,
		Total:       total,
	})
}

// Error sends an error response with a custom status code.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{Success: false, Message: message})
}

// BadRequest sends a 400 Bad Request error.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized error.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden error.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound sends a 404 Not Found error.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict sends a 409 Conflict error.
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalServerError sends a 500 Internal Server Error.
func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
