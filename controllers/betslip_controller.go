// Package controllers controllers/betslip_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"betboard/logger"
	"betboard/services"
)

// BetslipController turns uploaded slip images into bet candidates via
// the external extractor.
type BetslipController struct {
	extractor services.BetslipExtractor
	users     services.UserServiceInterface
}

// NewBetslipController creates a BetslipController.
func NewBetslipController(extractor services.BetslipExtractor, users services.UserServiceInterface) *BetslipController {
	return &BetslipController{extractor: extractor, users: users}
}

type processBetslipRequest struct {
	ImageBase64 string `json:"imageBase64"`
	S3Bucket    string `json:"s3Bucket"`
	S3Key       string `json:"s3Key"`
}

// ProcessBetslip handles POST /betslip/process: loads the image from
// the request or S3, runs the extractor and returns the parsed bet
// candidates plus warnings.
func (bc *BetslipController) ProcessBetslip(c *gin.Context) {
	userID := c.GetString("userID")

	profile, err := bc.users.GetOrCreateProfile(userID, c.GetString("email"))
	if err != nil || !(profile.FeatureFlags.CanBetslipImport || profile.FeatureFlags.CanBetslipImportOwn) {
		respondError(c, http.StatusForbidden, "Forbidden: missing canBetslipImport", "FORBIDDEN")
		return
	}

	var req processBetslipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON in request body", "INVALID_JSON")
		return
	}
	if req.ImageBase64 == "" && (req.S3Bucket == "" || req.S3Key == "") {
		respondError(c, http.StatusBadRequest,
			"Request must include either 'imageBase64' or 's3Bucket' and 's3Key'", "MISSING_IMAGE")
		return
	}

	var imageBytes []byte
	if req.ImageBase64 != "" {
		imageBytes, err = services.DecodeBase64Image(req.ImageBase64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid base64 image data", "INVALID_IMAGE")
			return
		}
	} else {
		imageBytes, err = services.LoadImageFromS3(req.S3Bucket, req.S3Key)
		if err != nil {
			logger.Error.Printf("ProcessBetslip: failed to load image from S3: %v", err)
			respondError(c, http.StatusBadRequest, "Could not load image from S3", "IMAGE_LOAD_ERROR")
			return
		}
	}

	if err := services.ValidateImageBytes(imageBytes); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), "INVALID_IMAGE")
		return
	}

	rawOutput, err := bc.extractor.AnalyzeBetslip(imageBytes)
	if err != nil {
		logger.Error.Printf("ProcessBetslip: extractor failed: %v", err)
		respondError(c, http.StatusBadGateway, "Failed to analyze bet slip", "EXTRACTOR_ERROR")
		return
	}

	candidates, warnings, err := services.ParseBetsFromModelOutput(rawOutput)
	if err != nil {
		var pErr *services.BetSlipParseError
		if errors.As(err, &pErr) {
			logger.Warn.Printf("ProcessBetslip: parser error: %v", pErr)
			respondError(c, http.StatusUnprocessableEntity, "Could not confidently parse this bet slip", "PARSER_ERROR")
			return
		}
		respondServiceError(c, err)
		return
	}

	logger.Info.Printf("ProcessBetslip: user %s, %d candidates, %d warnings", userID, len(candidates), len(warnings))

	data := gin.H{"bets": candidates}
	if len(warnings) > 0 {
		data["warnings"] = warnings
	}
	respondSuccess(c, http.StatusOK, data)
}
