// Package controllers controllers/responses.go
package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"betboard/services"
	"betboard/store"
)

// ------------------- response envelope -------------------

// apiError is the error half of the response envelope.
type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// respondSuccess writes the {success:true, data:...} envelope.
func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondError writes the {success:false, error:{...}} envelope.
func respondError(c *gin.Context, status int, message, code string) {
	c.JSON(status, gin.H{"success": false, "error": apiError{Message: message, Code: code}})
}

// respondServiceError maps service-layer errors onto the envelope:
// validation problems are the caller's fault, missing records are 404,
// anything else is a 500.
func respondServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(c, 400, vErr.Message, "VALIDATION_ERROR")
	case errors.Is(err, store.ErrNotFound):
		respondError(c, 404, "Not found", "NOT_FOUND")
	default:
		respondError(c, 500, "Internal server error", "INTERNAL_ERROR")
	}
}
