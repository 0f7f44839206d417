// Package controllers controllers/auth_controller.go
package controllers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"betboard/logger"
	"betboard/models"
)

// Assign to variables for easier testing
var (
	loadCredsFunc = LoadCreds
	saveCredsFunc = SaveCreds
)

func credsPath() string {
	path := os.Getenv("CREDS_FILE")
	if path == "" {
		path = "./config/users.json" // #nosec G101
	}
	return path
}

// LoadCreds loads local login credentials from the JSON file.
func LoadCreds() (*models.CredentialFile, error) {
	data, err := os.ReadFile(credsPath())
	if err != nil {
		return nil, err
	}
	var creds models.CredentialFile
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// SaveCreds writes the credential file back after a password change.
func SaveCreds(creds *models.CredentialFile) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(credsPath(), data, 0600)
}

// ComparePasswords checks if the given password matches the hashed password
func ComparePasswords(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

// ------------------ login handling ------------------

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates the user against the credential file and stores
// userID, email and the admin marker in the session.
func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		logger.Warn.Println("Login: missing email or password")
		respondError(c, http.StatusBadRequest, "Email and password are required", "VALIDATION_ERROR")
		return
	}

	creds, err := loadCredsFunc()
	if err != nil {
		logger.Error.Println("Login: failed to load credentials:", err)
		respondError(c, http.StatusInternalServerError, "Internal error, please try again later", "INTERNAL_ERROR")
		return
	}

	var match *models.Credential
	for i := range creds.Users {
		if creds.Users[i].Email == req.Email && ComparePasswords(creds.Users[i].Password, req.Password) {
			match = &creds.Users[i]
			break
		}
	}
	if match == nil {
		logger.Warn.Printf("Login: invalid login attempt for %s", req.Email)
		respondError(c, http.StatusUnauthorized, "Invalid email or password", "UNAUTHORIZED")
		return
	}

	session := sessions.Default(c)
	session.Set("userID", match.UserID)
	session.Set("email", match.Email)
	session.Set("isAdmin", match.IsAdmin)
	if err := session.Save(); err != nil {
		logger.Error.Println("Login: failed to save session:", err)
		respondError(c, http.StatusInternalServerError, "Internal error, please try again later", "INTERNAL_ERROR")
		return
	}

	logger.Info.Printf("Login: user %s logged in (admin=%v)", match.UserID, match.IsAdmin)
	respondSuccess(c, http.StatusOK, gin.H{
		"userId":  match.UserID,
		"email":   match.Email,
		"isAdmin": match.IsAdmin,
	})
}

// Logout clears the session.
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	if userID, ok := session.Get("userID").(string); ok && userID != "" {
		logger.Info.Printf("Logout: logging out user %s", userID)
	}

	session.Clear()
	if err := session.Save(); err != nil {
		logger.Error.Printf("Logout: error saving session during logout: %v", err)
	}
	respondSuccess(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// ------------------ password change ------------------

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword handles POST /password for the logged-in user: the
// current password must verify before the entry is re-hashed.
func ChangePassword(c *gin.Context) {
	email := c.GetString("email")

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		respondError(c, http.StatusBadRequest, "currentPassword and newPassword are required", "VALIDATION_ERROR")
		return
	}
	if len(req.NewPassword) < 8 {
		respondError(c, http.StatusBadRequest, "New password must be at least 8 characters", "VALIDATION_ERROR")
		return
	}

	creds, err := loadCredsFunc()
	if err != nil {
		logger.Error.Println("ChangePassword: failed to load credentials:", err)
		respondError(c, http.StatusInternalServerError, "Internal error, please try again later", "INTERNAL_ERROR")
		return
	}

	for i := range creds.Users {
		if creds.Users[i].Email != email {
			continue
		}
		if !ComparePasswords(creds.Users[i].Password, req.CurrentPassword) {
			logger.Warn.Printf("ChangePassword: wrong current password for %s", email)
			respondError(c, http.StatusUnauthorized, "Current password is incorrect", "UNAUTHORIZED")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			logger.Error.Printf("ChangePassword: hashing failed: %v", err)
			respondError(c, http.StatusInternalServerError, "Internal error, please try again later", "INTERNAL_ERROR")
			return
		}
		creds.Users[i].Password = string(hashed)

		if err := saveCredsFunc(creds); err != nil {
			logger.Error.Printf("ChangePassword: failed to save credentials: %v", err)
			respondError(c, http.StatusInternalServerError, "Internal error, please try again later", "INTERNAL_ERROR")
			return
		}

		logger.Info.Printf("ChangePassword: password updated for %s", email)
		respondSuccess(c, http.StatusOK, gin.H{"message": "Password changed successfully"})
		return
	}

	respondError(c, http.StatusNotFound, "Not found", "NOT_FOUND")
}
