// services/qrcode_service.go
package services

import (
	"os"

	"github.com/skip2/go-qrcode"
)

// GenerateBoardQRCode creates a QR code PNG linking to the public bet
// board, for sharing the dashboard from a phone.
func GenerateBoardQRCode(size int) ([]byte, error) {
	boardURL := os.Getenv("BOARD_URL")
	if boardURL == "" {
		boardURL = "http://localhost:8080" // Default for local testing
	}

	png, err := qrcode.Encode(boardURL, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}
