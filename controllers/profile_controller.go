// Package controllers controllers/profile_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"betboard/logger"
	"betboard/models"
	"betboard/services"
)

// ProfileController serves user profiles and their feature flags.
type ProfileController struct {
	users services.UserServiceInterface
}

// NewProfileController creates a ProfileController.
func NewProfileController(users services.UserServiceInterface) *ProfileController {
	return &ProfileController{users: users}
}

// GetProfile handles GET /users/profile: returns the caller's profile,
// creating a default one on first sight.
func (pc *ProfileController) GetProfile(c *gin.Context) {
	userID := c.GetString("userID")
	profile, err := pc.users.GetOrCreateProfile(userID, c.GetString("email"))
	if err != nil {
		logger.Error.Printf("GetProfile: failed for user %s: %v", userID, err)
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, profile)
}

// updateProfileRequest is the PUT body; userId selects the target user
// and defaults to the caller.
type updateProfileRequest struct {
	UserID string `json:"userId"`
	models.ProfileUpdate
}

// UpdateProfile handles PUT /users/profile. Only administrators may
// update profiles — including alias lists, which scope the own-level
// permissions, so regular users cannot grant themselves attribution.
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	callerID := c.GetString("userID")
	if !pc.users.IsAdmin(callerID) {
		respondError(c, http.StatusForbidden, "Forbidden: Only administrators can update user profiles", "FORBIDDEN")
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON in request body", "INVALID_JSON")
		return
	}

	targetID := req.UserID
	if targetID == "" {
		targetID = callerID
	}

	if req.Email == nil && req.Role == nil && req.FeatureFlags == nil && req.Aliases == nil {
		respondError(c, http.StatusBadRequest, "No updates provided", "VALIDATION_ERROR")
		return
	}

	updated, err := pc.users.UpdateProfile(targetID, req.ProfileUpdate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	logger.Info.Printf("UpdateProfile: admin %s updated profile %s", callerID, targetID)
	respondSuccess(c, http.StatusOK, updated)
}
