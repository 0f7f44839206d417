// Package services: services/bet_service.go
package services

import (
	"time"

	"github.com/google/uuid"

	"betboard/logger"
	"betboard/models"
	"betboard/store"
)

// Allow tests to pin timestamps.
var timestampFunc = func() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// BetServiceInterface is the bet CRUD boundary the controllers use.
type BetServiceInterface interface {
	CreateBet(userID string, bet models.Bet) (*models.Bet, error)
	GetBet(userID, betID string) (*models.Bet, error)
	ListBets(userID string, f store.BetFilters) ([]models.Bet, error)
	ListAllBets(f store.BetFilters) ([]models.Bet, error)
	UpdateBet(userID, betID string, upd models.BetUpdate) (*models.Bet, error)
	DeleteBet(userID, betID string) error
	ClearWeek(userID string) (int, error)
}

// BetService implements bet CRUD on top of a Store, enforcing the
// payout invariant: PotentialPayout is recomputed from amount and odds
// on every write, never trusted from the caller.
type BetService struct {
	store store.Store
}

// NewBetService creates a BetService backed by the given store.
func NewBetService(s store.Store) *BetService {
	return &BetService{store: s}
}

// CreateBet validates the bet, assigns IDs and timestamps, computes the
// payout and persists it. Caller-supplied payout values are discarded.
func (s *BetService) CreateBet(userID string, bet models.Bet) (*models.Bet, error) {
	if err := ValidateBet(bet); err != nil {
		return nil, err
	}

	bet.ID = uuid.NewString()
	bet.UserID = userID
	if bet.Status == "" {
		bet.Status = models.StatusPending
	}
	for i := range bet.Legs {
		if bet.Legs[i].ID == "" {
			bet.Legs[i].ID = uuid.NewString()
		}
	}

	bet.PotentialPayout = PayoutForBet(bet)
	now := timestampFunc()
	bet.CreatedAt = now
	bet.UpdatedAt = now

	if err := s.store.CreateBet(bet); err != nil {
		return nil, err
	}
	logger.Info.Printf("CreateBet: created %s bet %s for user %s (payout %.2f)", bet.Type, bet.ID, userID, bet.PotentialPayout)
	return &bet, nil
}

// GetBet fetches one bet owned by userID.
func (s *BetService) GetBet(userID, betID string) (*models.Bet, error) {
	return s.store.GetBet(userID, betID)
}

// ListBets returns the user's bets matching the filters.
func (s *BetService) ListBets(userID string, f store.BetFilters) ([]models.Bet, error) {
	return s.store.ListBets(userID, f)
}

// ListAllBets returns every bet matching the filters (public board).
func (s *BetService) ListAllBets(f store.BetFilters) ([]models.Bet, error) {
	return s.store.ListAllBets(f)
}

// UpdateBet merges a partial update into the stored bet and persists
// the result. Status values are validated, a replaced leg list must
// still hold at least 2 legs, and the payout is recomputed from the
// merged inputs in the same write. Last writer wins on concurrent
// updates.
func (s *BetService) UpdateBet(userID, betID string, upd models.BetUpdate) (*models.Bet, error) {
	bet, err := s.store.GetBet(userID, betID)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil && !models.ValidStatus(*upd.Status) {
		return nil, invalid("invalid status, must be one of: pending, won, lost")
	}
	if upd.Legs != nil {
		if bet.IsParlay() && len(*upd.Legs) < 2 {
			return nil, invalid("parlay must have at least 2 legs")
		}
		for i, leg := range *upd.Legs {
			if leg.Status != "" && !models.ValidStatus(leg.Status) {
				return nil, invalid("leg %d: invalid status, must be one of: pending, won, lost", i+1)
			}
		}
	}
	if upd.Date != nil && !ValidDate(*upd.Date) {
		return nil, invalid("date must be in YYYY-MM-DD format")
	}
	if upd.Amount != nil && *upd.Amount <= 0 {
		return nil, invalid("amount must be a positive number")
	}

	applyBetUpdate(bet, upd)

	// payout is derived state; recompute in the same write so reads
	// never observe a stale value
	bet.PotentialPayout = PayoutForBet(*bet)
	bet.UpdatedAt = timestampFunc()

	if err := s.store.PutBet(*bet); err != nil {
		return nil, err
	}
	logger.Info.Printf("UpdateBet: updated bet %s for user %s", betID, userID)
	return bet, nil
}

func applyBetUpdate(bet *models.Bet, upd models.BetUpdate) {
	if upd.Status != nil {
		bet.Status = *upd.Status
	}
	if upd.Date != nil {
		bet.Date = *upd.Date
	}
	if upd.Amount != nil {
		bet.Amount = *upd.Amount
	}
	if upd.AttributedTo != nil {
		bet.AttributedTo = *upd.AttributedTo
	}
	if upd.Featured != nil {
		bet.Featured = *upd.Featured
	}
	if upd.Sport != nil {
		bet.Sport = *upd.Sport
	}
	if upd.Teams != nil {
		bet.Teams = *upd.Teams
	}
	if upd.BetType != nil {
		bet.BetType = *upd.BetType
	}
	if upd.Selection != nil {
		bet.Selection = *upd.Selection
	}
	if upd.Odds != nil {
		bet.Odds = *upd.Odds
	}
	if upd.Legs != nil {
		legs := *upd.Legs
		for i := range legs {
			if legs[i].ID == "" {
				legs[i].ID = uuid.NewString()
			}
		}
		bet.Legs = legs
	}
}

// DeleteBet removes one bet owned by userID.
func (s *BetService) DeleteBet(userID, betID string) error {
	if _, err := s.store.GetBet(userID, betID); err != nil {
		return err
	}
	return s.store.DeleteBet(userID, betID)
}

// ClearWeek deletes the user's bets dated in the current Monday-to-
// Sunday week and returns how many were removed.
func (s *BetService) ClearWeek(userID string) (int, error) {
	weekStart, weekEnd := CurrentWeekRange()
	bets, err := s.store.ListBets(userID, store.BetFilters{
		StartDate: weekStart.Format(dateLayout),
		EndDate:   weekEnd.Format(dateLayout),
	})
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, bet := range bets {
		if err := s.store.DeleteBet(userID, bet.ID); err != nil {
			logger.Warn.Printf("ClearWeek: failed to delete bet %s: %v", bet.ID, err)
			continue
		}
		deleted++
	}
	logger.Info.Printf("ClearWeek: deleted %d bets for user %s", deleted, userID)
	return deleted, nil
}
