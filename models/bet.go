// Package models defines data structures used across the application.
// File: models/bet.go
package models

// ----------------------- bet types -----------------------

// Bet type discriminator values.
const (
	BetTypeSingle = "single"
	BetTypeParlay = "parlay"
)

// Bet / leg status values.
const (
	StatusPending = "pending"
	StatusWon     = "won"
	StatusLost    = "lost"
)

// Market types a single bet or leg can be placed on.
const (
	MarketSpread    = "spread"
	MarketMoneyline = "moneyline"
	MarketOverUnder = "over/under"
	MarketTotal     = "total"
)

// ----------------------- leg model -----------------------

// Leg is one selection inside a parlay. Status is optional; an empty
// status means the leg is still pending. AttributedTo credits the leg
// to a person for own-scoped permission checks.
type Leg struct {
	ID           string  `json:"id"`
	Sport        string  `json:"sport"`
	Teams        string  `json:"teams"`
	BetType      string  `json:"betType"`
	Selection    string  `json:"selection"`
	Odds         float64 `json:"odds"`
	Status       string  `json:"status,omitempty"`
	AttributedTo string  `json:"attributedTo,omitempty"`
}

// EffectiveStatus returns the leg status, defaulting to pending when unset.
func (l Leg) EffectiveStatus() string {
	if l.Status == "" {
		return StatusPending
	}
	return l.Status
}

// ----------------------- bet model -----------------------

// Bet is a tracked wager: either a single selection or a parlay of legs.
// PotentialPayout is derived state; it is recomputed from Amount and odds
// on every write and must never be edited independently.
type Bet struct {
	ID              string  `json:"betId"`
	UserID          string  `json:"userId"`
	Type            string  `json:"type"`
	Status          string  `json:"status"`
	Date            string  `json:"date"` // YYYY-MM-DD
	Amount          float64 `json:"amount"`
	PotentialPayout float64 `json:"potentialPayout"`
	AttributedTo    string  `json:"attributedTo,omitempty"`
	Featured        bool    `json:"featured,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`

	// single-only fields
	Sport     string  `json:"sport,omitempty"`
	Teams     string  `json:"teams,omitempty"`
	BetType   string  `json:"betType,omitempty"`
	Selection string  `json:"selection,omitempty"`
	Odds      float64 `json:"odds,omitempty"`

	// parlay-only field
	Legs []Leg `json:"legs,omitempty"`
}

// IsParlay reports whether the bet is a multi-leg parlay.
func (b Bet) IsParlay() bool {
	return b.Type == BetTypeParlay
}

// HasPendingState reports whether the bet itself is pending or, for a
// parlay, any of its legs still is. The dashboard's "pending" filter and
// the admin list ordering both use this definition.
func (b Bet) HasPendingState() bool {
	if b.Status == StatusPending {
		return true
	}
	if b.IsParlay() {
		for _, leg := range b.Legs {
			if leg.EffectiveStatus() == StatusPending {
				return true
			}
		}
	}
	return false
}

// ValidStatus reports whether s is one of the recognised bet statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusWon || s == StatusLost
}
