// Package controllers controllers/bet_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"betboard/logger"
	"betboard/middleware"
	"betboard/models"
	"betboard/services"
	"betboard/store"
	"betboard/websocket"
)

// BetController handles the bet CRUD surface and the board views.
type BetController struct {
	bets  services.BetServiceInterface
	users services.UserServiceInterface
}

// NewBetController creates a BetController.
func NewBetController(bets services.BetServiceInterface, users services.UserServiceInterface) *BetController {
	return &BetController{bets: bets, users: users}
}

// profileFor loads the caller's profile; nil when it cannot be loaded,
// which the permission resolver treats as deny-everything.
func (bc *BetController) profileFor(c *gin.Context) *models.UserProfile {
	userID := c.GetString("userID")
	if userID == "" {
		return nil
	}
	profile, err := bc.users.GetOrCreateProfile(userID, c.GetString("email"))
	if err != nil {
		logger.Error.Printf("profileFor: failed to load profile for %s: %v", userID, err)
		return nil
	}
	return profile
}

func filtersFromQuery(c *gin.Context) store.BetFilters {
	return store.BetFilters{
		Status:    c.Query("status"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Type:      c.Query("type"),
	}
}

// ------------------- listing -------------------

// ListBets handles GET /bets. Authenticated callers get their own
// bets; anonymous callers get the public view of all bets.
func (bc *BetController) ListBets(c *gin.Context) {
	filters := filtersFromQuery(c)
	userID := middleware.SessionUserID(c)

	var bets []models.Bet
	var err error
	if userID != "" {
		bets, err = bc.bets.ListBets(userID, filters)
	} else {
		bets, err = bc.bets.ListAllBets(filters)
	}
	if err != nil {
		logger.Error.Printf("ListBets: %v", err)
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"bets": bets})
}

// Board handles GET /board: the public dashboard grouping. Status and
// attribution filters run first (pending keeps partially settled
// parlays), then the stable featured/singles/parlays partition.
func (bc *BetController) Board(c *gin.Context) {
	bets, err := bc.bets.ListAllBets(store.BetFilters{})
	if err != nil {
		logger.Error.Printf("Board: %v", err)
		respondServiceError(c, err)
		return
	}

	bets = services.FilterByStatus(bets, c.Query("status"))
	bets = services.FilterByAttribution(bets, c.Query("attributedTo"))
	groups := services.PartitionFeatured(bets)

	respondSuccess(c, http.StatusOK, gin.H{
		"featured": groups.Featured,
		"singles":  groups.Singles,
		"parlays":  groups.Parlays,
	})
}

// ManageBoard handles GET /bets/manage: the admin list. Visibility is
// gated on the see-manage-page flag pair; rows are ordered with
// anything still pending first.
func (bc *BetController) ManageBoard(c *gin.Context) {
	profile := bc.profileFor(c)
	if !services.CanSeeManageBetsPage(profile) {
		respondError(c, http.StatusForbidden, "Forbidden", "FORBIDDEN")
		return
	}

	// the status filter runs in the service layer, not the store: the
	// pending view must keep a settled parlay with a pending leg, which
	// the store's exact status match would drop
	filters := filtersFromQuery(c)
	status := filters.Status
	filters.Status = ""

	bets, err := bc.bets.ListBets(c.GetString("userID"), filters)
	if err != nil {
		logger.Error.Printf("ManageBoard: %v", err)
		respondServiceError(c, err)
		return
	}

	bets = services.FilterByStatus(bets, status)
	bets = services.FilterByAttribution(bets, c.Query("attributedTo"))
	respondSuccess(c, http.StatusOK, gin.H{"bets": services.SortPendingFirst(bets)})
}

// ------------------- create -------------------

// CreateBet handles POST /bets.
func (bc *BetController) CreateBet(c *gin.Context) {
	profile := bc.profileFor(c)
	// a bet being created has no stored attribution to match against,
	// so the own-scoped create flag is a plain grant here
	if profile == nil || !(profile.FeatureFlags.CanCreateBets || profile.FeatureFlags.CanCreateBetsOwn) {
		respondError(c, http.StatusForbidden, "Forbidden: missing canCreateBets", "FORBIDDEN")
		return
	}

	var bet models.Bet
	if err := c.ShouldBindJSON(&bet); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON in request body", "INVALID_JSON")
		return
	}

	created, err := bc.bets.CreateBet(c.GetString("userID"), bet)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	websocket.BroadcastBetEvent(websocket.EventBetCreated, created)
	websocket.PublishBetsCreated(1)
	respondSuccess(c, http.StatusCreated, created)
}

// ------------------- update -------------------

// legsContentChanged reports whether replacing the stored legs with the
// update's legs changes anything besides per-leg statuses. A pure
// status change is settlement, not a content edit.
func legsContentChanged(old, updated []models.Leg) bool {
	if len(old) != len(updated) {
		return true
	}
	for i := range updated {
		a, b := old[i], updated[i]
		if a.Sport != b.Sport || a.Teams != b.Teams || a.BetType != b.BetType ||
			a.Selection != b.Selection || a.Odds != b.Odds || a.AttributedTo != b.AttributedTo {
			return true
		}
	}
	return false
}

// checkUpdatePermissions runs the permission resolver against what the
// update actually touches: featured toggles, win/loss settlement (per
// leg for parlays) and content edits each consult their own flag pair.
func checkUpdatePermissions(profile *models.UserProfile, bet models.Bet, upd models.BetUpdate) bool {
	if upd.TouchesFeatured() {
		if !services.CanMarkFeatured(profile, bet).Overall {
			return false
		}
	}

	if upd.TouchesSettlement() {
		decision := services.CanMarkWinLoss(profile, bet)
		if upd.Status != nil && !decision.Overall {
			return false
		}
		if upd.Legs != nil {
			for i, leg := range *upd.Legs {
				if i >= len(bet.Legs) {
					break
				}
				if leg.EffectiveStatus() == bet.Legs[i].EffectiveStatus() {
					continue
				}
				if i >= len(decision.PerLeg) || !decision.PerLeg[i] {
					return false
				}
			}
		}
	}

	contentEdit := upd.TouchesContent() &&
		(upd.Legs == nil || legsContentChanged(bet.Legs, *upd.Legs) ||
			upd.Date != nil || upd.Amount != nil || upd.AttributedTo != nil ||
			upd.Sport != nil || upd.Teams != nil || upd.BetType != nil ||
			upd.Selection != nil || upd.Odds != nil)
	if contentEdit {
		if !services.CanEditBet(profile, bet).Overall {
			return false
		}
	}
	return true
}

// UpdateBet handles PUT /bets/:betId. The bet must belong to the
// caller; concurrent updates are last-writer-wins.
func (bc *BetController) UpdateBet(c *gin.Context) {
	userID := c.GetString("userID")
	betID := c.Param("betId")
	if betID == "" {
		respondError(c, http.StatusBadRequest, "Missing betId in path", "MISSING_BET_ID")
		return
	}

	existing, err := bc.bets.GetBet(userID, betID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var upd models.BetUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON in request body", "INVALID_JSON")
		return
	}

	profile := bc.profileFor(c)
	if !checkUpdatePermissions(profile, *existing, upd) {
		respondError(c, http.StatusForbidden, "Forbidden", "FORBIDDEN")
		return
	}

	updated, err := bc.bets.UpdateBet(userID, betID, upd)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	websocket.BroadcastBetEvent(websocket.EventBetUpdated, updated)
	respondSuccess(c, http.StatusOK, updated)
}

// ------------------- delete -------------------

// DeleteBet handles DELETE /bets/:betId. The global delete flag covers
// everything; the own-scoped flag covers only bets attributed to one
// of the caller's aliases.
func (bc *BetController) DeleteBet(c *gin.Context) {
	userID := c.GetString("userID")
	betID := c.Param("betId")
	if betID == "" {
		respondError(c, http.StatusBadRequest, "Missing betId in path", "MISSING_BET_ID")
		return
	}

	existing, err := bc.bets.GetBet(userID, betID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	profile := bc.profileFor(c)
	allowed := false
	if profile != nil {
		switch {
		case profile.FeatureFlags.CanDeleteBets:
			allowed = true
		case profile.FeatureFlags.CanDeleteBetsOwn:
			allowed = profile.HasAlias(existing.AttributedTo)
		}
	}
	if !allowed {
		respondError(c, http.StatusForbidden, "Forbidden: missing canDeleteBets", "FORBIDDEN")
		return
	}

	if err := bc.bets.DeleteBet(userID, betID); err != nil {
		respondServiceError(c, err)
		return
	}

	websocket.BroadcastBetEvent(websocket.EventBetDeleted, gin.H{"betId": betID})
	respondSuccess(c, http.StatusOK, gin.H{"message": "Bet deleted successfully"})
}

// ClearWeek handles POST /bets/clear-week: removes the caller's bets
// dated in the current Monday-to-Sunday week.
func (bc *BetController) ClearWeek(c *gin.Context) {
	profile := bc.profileFor(c)
	if profile == nil || !(profile.FeatureFlags.CanClearWeek || profile.FeatureFlags.CanClearWeekOwn) {
		respondError(c, http.StatusForbidden, "Forbidden: missing canClearWeek", "FORBIDDEN")
		return
	}

	deleted, err := bc.bets.ClearWeek(c.GetString("userID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{
		"message":      "Week cleared successfully",
		"deletedCount": deleted,
	})
}
