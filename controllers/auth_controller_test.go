// file: controllers/auth_controller_test.go
package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"betboard/middleware"
	"betboard/models"
)

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

// withCreds swaps the credential load/save hooks for an in-memory copy
// and returns a pointer to the saved state.
func withCreds(t *testing.T, creds models.CredentialFile) *models.CredentialFile {
	t.Helper()
	prevLoad, prevSave := loadCredsFunc, saveCredsFunc
	saved := &creds
	loadCredsFunc = func() (*models.CredentialFile, error) {
		copied := *saved
		return &copied, nil
	}
	saveCredsFunc = func(c *models.CredentialFile) error {
		saved = c
		return nil
	}
	t.Cleanup(func() {
		loadCredsFunc, saveCredsFunc = prevLoad, prevSave
	})
	return saved
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sessions.Sessions("testsession", cookie.NewStore([]byte("test-secret"))))
	router.POST("/login", Login)
	router.GET("/logout", Logout)
	router.POST("/password", middleware.AuthRequired, ChangePassword)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	withCreds(t, models.CredentialFile{Users: []models.Credential{
		{UserID: "u1", Email: "mike@example.com", Password: hashPassword(t, "hunter22"), IsAdmin: true},
	}})
	router := newAuthRouter()

	w := postJSON(t, router, "/login", loginRequest{Email: "mike@example.com", Password: "hunter22"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isAdmin":true`)
	assert.NotEmpty(t, w.Result().Cookies())
}

func TestLogin_WrongPassword(t *testing.T) {
	withCreds(t, models.CredentialFile{Users: []models.Credential{
		{UserID: "u1", Email: "mike@example.com", Password: hashPassword(t, "hunter22")},
	}})
	router := newAuthRouter()

	w := postJSON(t, router, "/login", loginRequest{Email: "mike@example.com", Password: "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	withCreds(t, models.CredentialFile{})
	router := newAuthRouter()

	w := postJSON(t, router, "/login", loginRequest{Email: "ghost@example.com", Password: "whatever"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	router := newAuthRouter()

	w := postJSON(t, router, "/login", loginRequest{Email: "mike@example.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout(t *testing.T) {
	withCreds(t, models.CredentialFile{Users: []models.Credential{
		{UserID: "u1", Email: "mike@example.com", Password: hashPassword(t, "hunter22")},
	}})
	router := newAuthRouter()

	w := postJSON(t, router, "/login", loginRequest{Email: "mike@example.com", Password: "hunter22"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	out := httptest.NewRecorder()
	router.ServeHTTP(out, req)
	assert.Equal(t, http.StatusOK, out.Code)
}

func TestChangePassword(t *testing.T) {
	withCreds(t, models.CredentialFile{Users: []models.Credential{
		{UserID: "u1", Email: "mike@example.com", Password: hashPassword(t, "oldpassword")},
	}})
	router := newAuthRouter()

	w := postJSON(t, router, "/login", loginRequest{Email: "mike@example.com", Password: "oldpassword"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	w = postJSON(t, router, "/password", changePasswordRequest{
		CurrentPassword: "oldpassword",
		NewPassword:     "newpassword123",
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// the old password no longer works, the new one does
	w = postJSON(t, router, "/login", loginRequest{Email: "mike@example.com", Password: "oldpassword"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = postJSON(t, router, "/login", loginRequest{Email: "mike@example.com", Password: "newpassword123"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	withCreds(t, models.CredentialFile{Users: []models.Credential{
		{UserID: "u1", Email: "mike@example.com", Password: hashPassword(t, "oldpassword")},
	}})
	router := newAuthRouter()

	w := postJSON(t, router, "/login", loginRequest{Email: "mike@example.com", Password: "oldpassword"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	w = postJSON(t, router, "/password", changePasswordRequest{
		CurrentPassword: "nope",
		NewPassword:     "newpassword123",
	}, cookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePassword_TooShort(t *testing.T) {
	withCreds(t, models.CredentialFile{Users: []models.Credential{
		{UserID: "u1", Email: "mike@example.com", Password: hashPassword(t, "oldpassword")},
	}})
	router := newAuthRouter()

	w := postJSON(t, router, "/login", loginRequest{Email: "mike@example.com", Password: "oldpassword"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	w = postJSON(t, router, "/password", changePasswordRequest{
		CurrentPassword: "oldpassword",
		NewPassword:     "short",
	}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
