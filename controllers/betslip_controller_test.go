// file: controllers/betslip_controller_test.go
package controllers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"betboard/middleware"
	"betboard/models"
	"betboard/services"
	"betboard/store"
)

var testPNG = append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 32)...)

type betslipEnv struct {
	*testEnv
	extractor *services.MockExtractor
}

func newBetslipEnv(t *testing.T) *betslipEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := store.NewMemoryStore()
	userService := services.NewUserService(mem)
	extractor := new(services.MockExtractor)
	controller := NewBetslipController(extractor, userService)

	router := gin.New()
	router.Use(sessions.Sessions("testsession", cookie.NewStore([]byte("test-secret"))))
	router.POST("/test-login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set("userID", c.Query("userID"))
		session.Set("email", c.Query("email"))
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})
	router.POST("/betslip/process", middleware.AuthRequired, controller.ProcessBetslip)

	return &betslipEnv{
		testEnv:   &testEnv{router: router, store: mem, users: userService},
		extractor: extractor,
	}
}

func (e *betslipEnv) allowImport(t *testing.T, userID string) {
	e.seedProfile(t, models.UserProfile{
		UserID:       userID,
		Role:         models.RoleUser,
		FeatureFlags: models.FeatureFlags{CanBetslipImport: true},
	})
}

func encodedSlip() map[string]interface{} {
	return map[string]interface{}{
		"imageBase64": base64.StdEncoding.EncodeToString(testPNG),
	}
}

func TestProcessBetslip_Success(t *testing.T) {
	env := newBetslipEnv(t)
	env.allowImport(t, "u1")
	env.extractor.On("AnalyzeBetslip", mock.Anything).Return(
		`{"bets":[{"type":"single","amount":50,"date":"2025-06-13","sport":"NBA","teams":"Lakers vs Celtics","betType":"moneyline","selection":"Lakers","odds":150}]}`, nil)

	cookies := env.loginAs(t, "u1", "u1@example.com", false)
	w := env.do(t, http.MethodPost, "/betslip/process", encodedSlip(), cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Bets     []services.BetCandidate `json:"bets"`
		Warnings []string                `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &data))
	require.Len(t, data.Bets, 1)
	assert.Empty(t, data.Bets[0].ValidationError)
	assert.Empty(t, data.Warnings)
	env.extractor.AssertExpectations(t)
}

func TestProcessBetslip_WarningsSurfaced(t *testing.T) {
	env := newBetslipEnv(t)
	env.allowImport(t, "u1")
	// amount 0 fails validation, so the candidate comes back tagged
	env.extractor.On("AnalyzeBetslip", mock.Anything).Return(
		`{"bets":[{"type":"single","amount":0,"date":"2025-06-13","sport":"NBA","teams":"Lakers vs Celtics","betType":"moneyline","selection":"Lakers","odds":150}]}`, nil)

	cookies := env.loginAs(t, "u1", "u1@example.com", false)
	w := env.do(t, http.MethodPost, "/betslip/process", encodedSlip(), cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Bets     []services.BetCandidate `json:"bets"`
		Warnings []string                `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &data))
	require.Len(t, data.Bets, 1)
	assert.NotEmpty(t, data.Bets[0].ValidationError)
	assert.NotEmpty(t, data.Warnings)
}

func TestProcessBetslip_ForbiddenWithoutFlag(t *testing.T) {
	env := newBetslipEnv(t)
	env.seedProfile(t, models.UserProfile{UserID: "u1", Role: models.RoleUser})

	cookies := env.loginAs(t, "u1", "u1@example.com", false)
	w := env.do(t, http.MethodPost, "/betslip/process", encodedSlip(), cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProcessBetslip_MissingImage(t *testing.T) {
	env := newBetslipEnv(t)
	env.allowImport(t, "u1")

	cookies := env.loginAs(t, "u1", "u1@example.com", false)
	w := env.do(t, http.MethodPost, "/betslip/process", map[string]interface{}{}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_IMAGE", decodeEnvelope(t, w).Error.Code)
}

func TestProcessBetslip_BadBase64(t *testing.T) {
	env := newBetslipEnv(t)
	env.allowImport(t, "u1")

	cookies := env.loginAs(t, "u1", "u1@example.com", false)
	w := env.do(t, http.MethodPost, "/betslip/process", map[string]interface{}{
		"imageBase64": "!!! not base64 !!!",
	}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_IMAGE", decodeEnvelope(t, w).Error.Code)
}

func TestProcessBetslip_TextMasqueradingAsImage(t *testing.T) {
	env := newBetslipEnv(t)
	env.allowImport(t, "u1")

	cookies := env.loginAs(t, "u1", "u1@example.com", false)
	w := env.do(t, http.MethodPost, "/betslip/process", map[string]interface{}{
		"imageBase64": base64.StdEncoding.EncodeToString([]byte("just some plain text, not an image at all")),
	}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_IMAGE", decodeEnvelope(t, w).Error.Code)
}

func TestProcessBetslip_ExtractorFailure(t *testing.T) {
	env := newBetslipEnv(t)
	env.allowImport(t, "u1")
	env.extractor.On("AnalyzeBetslip", mock.Anything).Return("", assert.AnError)

	cookies := env.loginAs(t, "u1", "u1@example.com", false)
	w := env.do(t, http.MethodPost, "/betslip/process", encodedSlip(), cookies)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "EXTRACTOR_ERROR", decodeEnvelope(t, w).Error.Code)
}

func TestProcessBetslip_UnparseableOutput(t *testing.T) {
	env := newBetslipEnv(t)
	env.allowImport(t, "u1")
	env.extractor.On("AnalyzeBetslip", mock.Anything).Return("I could not read this slip, sorry.", nil)

	cookies := env.loginAs(t, "u1", "u1@example.com", false)
	w := env.do(t, http.MethodPost, "/betslip/process", encodedSlip(), cookies)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "PARSER_ERROR", decodeEnvelope(t, w).Error.Code)
}
