// Package controllers controllers/board_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"betboard/logger"
	"betboard/services"
)

// Health is the load balancer health check.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// BoardQRCode handles GET /board/qr: a PNG QR code pointing at the
// public board, for sharing the dashboard from a phone.
func BoardQRCode(c *gin.Context) {
	png, err := services.GenerateBoardQRCode(256)
	if err != nil {
		logger.Error.Printf("BoardQRCode: failed to generate QR code: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to generate QR code", "INTERNAL_ERROR")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
