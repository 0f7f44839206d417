// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"betboard/logger"
)

// -------------- authentication middleware --------------

// AuthRequired is a middleware that ensures the caller is logged in.
// How it works:
// - Retrieves the session from the request context.
// - Checks if the "userID" session variable is set.
// - If no user is found, responds 401 and aborts execution.
// - Otherwise, the request proceeds with the user ID stored on the context.
// Usage:
//
//	protected := router.Group("/", middleware.AuthRequired)
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	userID, ok := session.Get("userID").(string)

	if !ok || userID == "" {
		logger.Warn.Printf("AuthRequired: no user in session for %s %s", c.Request.Method, c.Request.URL.Path)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": gin.H{"message": "Unauthorized", "code": "UNAUTHORIZED"}})
		c.Abort()
		return
	}

	c.Set("userID", userID)
	if email, ok := session.Get("email").(string); ok {
		c.Set("email", email)
	}

	logger.Debug.Printf("[AuthRequired] user %s authenticated - proceeding with request", userID)
	c.Next()
}

// SessionUserID returns the authenticated user ID stored by
// AuthRequired, or "" when the request is anonymous.
func SessionUserID(c *gin.Context) string {
	session := sessions.Default(c)
	userID, _ := session.Get("userID").(string)
	return userID
}
