// Package models defines data structures used across the application.
// File: models/update.go
package models

// BetUpdate is a partial update to a bet. Nil fields are left
// unchanged. ID, UserID and CreatedAt are deliberately absent: they can
// never be updated. PotentialPayout is absent too — it is derived state
// and always recomputed from the merged amount and odds.
type BetUpdate struct {
	Status       *string  `json:"status,omitempty"`
	Date         *string  `json:"date,omitempty"`
	Amount       *float64 `json:"amount,omitempty"`
	AttributedTo *string  `json:"attributedTo,omitempty"`
	Featured     *bool    `json:"featured,omitempty"`

	// single-only fields
	Sport     *string  `json:"sport,omitempty"`
	Teams     *string  `json:"teams,omitempty"`
	BetType   *string  `json:"betType,omitempty"`
	Selection *string  `json:"selection,omitempty"`
	Odds      *float64 `json:"odds,omitempty"`

	// parlay-only field; replaces the whole leg list
	Legs *[]Leg `json:"legs,omitempty"`
}

// TouchesSettlement reports whether the update changes the bet's
// status or any leg status (win/loss marking).
func (u BetUpdate) TouchesSettlement() bool {
	if u.Status != nil {
		return true
	}
	if u.Legs != nil {
		for _, leg := range *u.Legs {
			if leg.Status != "" {
				return true
			}
		}
	}
	return false
}

// TouchesFeatured reports whether the update toggles the featured flag.
func (u BetUpdate) TouchesFeatured() bool {
	return u.Featured != nil
}

// TouchesContent reports whether the update edits bet content beyond
// settlement and the featured flag.
func (u BetUpdate) TouchesContent() bool {
	return u.Date != nil || u.Amount != nil || u.AttributedTo != nil ||
		u.Sport != nil || u.Teams != nil || u.BetType != nil ||
		u.Selection != nil || u.Odds != nil || u.Legs != nil
}

// ProfileUpdate is a partial update to a user profile. UserID is the
// target user, never an updatable field.
type ProfileUpdate struct {
	Email        *string       `json:"email,omitempty"`
	Role         *string       `json:"role,omitempty"`
	FeatureFlags *FeatureFlags `json:"featureFlags,omitempty"`
	Aliases      *[]string     `json:"aliases,omitempty"`
}
