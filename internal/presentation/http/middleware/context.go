package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID returns the authenticated user's ID, or uuid.Nil
func GetUserID(c *gin.Context) uuid.UUID {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// GetUserEmail returns the authenticated user's email, or empty
func GetUserEmail(c *gin.Context) string {
	value, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	email, _ := value.(string)
	return email
}

// GetUserRoles returns the authenticated user's role names
func GetUserRoles(c *gin.Context) []string {
	value, exists := c.Get("user_roles")
	if !exists {
		return nil
	}
	roles, _ := value.([]string)
	return roles
}

// GetSessionJTI returns the JTI of the session behind the current token
func GetSessionJTI(c *gin.Context) string {
	value, exists := c.Get("session_jti")
	if !exists {
		return ""
	}
	jti, _ := value.(string)
	return jti
}

// HasRole reports whether the authenticated user carries the role
func HasRole(c *gin.Context, role string) bool {
	for _, r := range GetUserRoles(c) {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user is an admin or super-admin
func IsAdmin(c *gin.Context) bool {
	return HasRole(c, "admin") || HasRole(c, "super-admin")
}

// IsSuperAdmin reports whether the user is a super-admin
func IsSuperAdmin(c *gin.Context) bool {
	return HasRole(c, "super-admin")
}
