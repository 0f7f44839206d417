// Package store provides persistence for bets and user profiles.
// File: store/store.go
package store

import (
	"errors"

	"betboard/models"
)

// ErrNotFound is returned when a bet or profile does not exist.
var ErrNotFound = errors.New("not found")

// BetFilters narrows a bet listing. Zero values mean "no filter".
// Dates are inclusive YYYY-MM-DD bounds compared as strings, which is
// safe for ISO dates.
type BetFilters struct {
	Status    string
	StartDate string
	EndDate   string
	Type      string
}

// Store is the persistence boundary. Writes are last-writer-wins; there
// is no conditional-write or version check on concurrent edits.
type Store interface {
	CreateBet(bet models.Bet) error
	GetBet(userID, betID string) (*models.Bet, error)
	ListBets(userID string, f BetFilters) ([]models.Bet, error)
	ListAllBets(f BetFilters) ([]models.Bet, error)
	PutBet(bet models.Bet) error
	DeleteBet(userID, betID string) error

	GetProfile(userID string) (*models.UserProfile, error)
	PutProfile(profile models.UserProfile) error
}

// matchesFilters applies listing filters to a bet. Shared by the
// Dynamo and in-memory implementations: both fetch by user and filter
// in application code, matching how the original queried.
func matchesFilters(bet models.Bet, f BetFilters) bool {
	if f.Status != "" && bet.Status != f.Status {
		return false
	}
	if f.StartDate != "" && bet.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && bet.Date > f.EndDate {
		return false
	}
	if f.Type != "" && bet.Type != f.Type {
		return false
	}
	return true
}
