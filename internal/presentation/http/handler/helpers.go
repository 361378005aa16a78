package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

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

// GetUserLogin extracts the user login from the Gin context
func GetUserLogin(c *gin.Context) string {
	login, exists := c.Get("user_login")
	if !exists {
		return ""
	}
	return login.(string)
}

// IsAdmin checks if the authenticated user is an administrator
func IsAdmin(c *gin.Context) bool {
	admin, exists := c.Get("user_admin")
	if !exists {
		return false
	}
	isAdmin, ok := admin.(bool)
	return ok && isAdmin
}
