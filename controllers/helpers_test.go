// file: controllers/helpers_test.go
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
	"github.com/stretchr/testify/require"

	"betboard/middleware"
	"betboard/models"
	"betboard/services"
	"betboard/store"
)

// testEnv wires real services over the in-memory store behind a router
// that mirrors the production route layout, plus a /test-login route so
// tests can establish sessions without the credential file.
type testEnv struct {
	router *gin.Engine
	store  *store.MemoryStore
	bets   *services.BetService
	users  *services.UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := store.NewMemoryStore()
	betService := services.NewBetService(mem)
	userService := services.NewUserService(mem)
	betController := NewBetController(betService, userService)
	profileController := NewProfileController(userService)

	router := gin.New()
	router.Use(sessions.Sessions("testsession", cookie.NewStore([]byte("test-secret"))))

	router.POST("/test-login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set("userID", c.Query("userID"))
		session.Set("email", c.Query("email"))
		if c.Query("isAdmin") == "true" {
			session.Set("isAdmin", true)
		}
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})

	router.GET("/bets", betController.ListBets)
	router.GET("/board", betController.Board)

	protected := router.Group("/", middleware.AuthRequired)
	{
		protected.POST("/bets", betController.CreateBet)
		protected.PUT("/bets/:betId", betController.UpdateBet)
		protected.DELETE("/bets/:betId", betController.DeleteBet)
		protected.POST("/bets/clear-week", betController.ClearWeek)
		protected.GET("/bets/manage", betController.ManageBoard)
		protected.GET("/users/profile", profileController.GetProfile)
	}

	admin := router.Group("/", middleware.AuthRequired, middleware.AdminRequired())
	{
		admin.PUT("/users/profile", profileController.UpdateProfile)
	}

	return &testEnv{router: router, store: mem, bets: betService, users: userService}
}

// loginAs performs the test login and returns the session cookies.
func (e *testEnv) loginAs(t *testing.T, userID, email string, admin bool) []*http.Cookie {
	t.Helper()
	query := "userID=" + userID + "&email=" + email
	if admin {
		query += "&isAdmin=true"
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test-login?"+query, nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

// do sends a request with an optional JSON body and session cookies.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// envelope decodes the standard response envelope.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// seedProfile stores a profile directly in the backing store.
func (e *testEnv) seedProfile(t *testing.T, profile models.UserProfile) {
	t.Helper()
	require.NoError(t, e.store.PutProfile(profile))
}

// seedBet creates a bet through the service so IDs and payout are real.
func (e *testEnv) seedBet(t *testing.T, userID string, bet models.Bet) *models.Bet {
	t.Helper()
	created, err := e.bets.CreateBet(userID, bet)
	require.NoError(t, err)
	return created
}
