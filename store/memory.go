// Package store: store/memory.go
package store

import (
	"sync"

	"betboard/models"
)

// MemoryStore is a mutex-guarded in-memory Store used for local
// development and tests.
type MemoryStore struct {
	mu       sync.Mutex
	bets     map[string]map[string]models.Bet // userID -> betID -> bet
	profiles map[string]models.UserProfile
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bets:     make(map[string]map[string]models.Bet),
		profiles: make(map[string]models.UserProfile),
	}
}

// CreateBet stores a new bet.
func (s *MemoryStore) CreateBet(bet models.Bet) error {
	return s.PutBet(bet)
}

// PutBet overwrites the stored bet. Last writer wins.
func (s *MemoryStore) PutBet(bet models.Bet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bets[bet.UserID] == nil {
		s.bets[bet.UserID] = make(map[string]models.Bet)
	}
	s.bets[bet.UserID][bet.ID] = bet
	return nil
}

// GetBet fetches one bet owned by userID.
func (s *MemoryStore) GetBet(userID, betID string) (*models.Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bet, ok := s.bets[userID][betID]
	if !ok {
		return nil, ErrNotFound
	}
	return &bet, nil
}

// ListBets returns a user's bets matching the filters.
func (s *MemoryStore) ListBets(userID string, f BetFilters) ([]models.Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var bets []models.Bet
	for _, bet := range s.bets[userID] {
		if matchesFilters(bet, f) {
			bets = append(bets, bet)
		}
	}
	return bets, nil
}

// ListAllBets returns every user's bets matching the filters.
func (s *MemoryStore) ListAllBets(f BetFilters) ([]models.Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var bets []models.Bet
	for _, userBets := range s.bets {
		for _, bet := range userBets {
			if matchesFilters(bet, f) {
				bets = append(bets, bet)
			}
		}
	}
	return bets, nil
}

// DeleteBet removes a bet.
func (s *MemoryStore) DeleteBet(userID, betID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bets[userID][betID]; !ok {
		return ErrNotFound
	}
	delete(s.bets[userID], betID)
	return nil
}

// GetProfile fetches a user profile.
func (s *MemoryStore) GetProfile(userID string) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &profile, nil
}

// PutProfile overwrites a user profile.
func (s *MemoryStore) PutProfile(profile models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
	return nil
}
