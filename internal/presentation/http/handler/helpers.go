package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/application/service"
	"github.com/sangkips/receiptbook-api/internal/presentation/http/dto/response"
)

// CallerKey is the gin context key under which the auth middleware stores the caller
const CallerKey = "caller"

// GetCaller extracts the authenticated caller from the Gin context
func GetCaller(c *gin.Context) (service.Caller, bool) {
	val, exists := c.Get(CallerKey)
	if !exists {
		return service.Caller{}, false
	}
	caller, ok := val.(service.Caller)
	return caller, ok
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// requireCaller writes a 401 and returns false when the request carries no identity
func requireCaller(c *gin.Context) (service.Caller, bool) {
	caller, ok := GetCaller(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return service.Caller{}, false
	}
	return caller, true
}

// receiptID parses the :id path parameter
func receiptID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid receipt ID")
		return 0, false
	}
	return id, true
}
