// Package services: services/permissions.go
package services

import "betboard/models"

// PermissionDecision is the result of a per-bet capability check.
// Overall covers the bet itself; PerLeg is nil for single bets and
// holds one entry per leg, in leg order, for parlays.
type PermissionDecision struct {
	Overall bool   `json:"overall"`
	PerLeg  []bool `json:"perLeg,omitempty"`
}

// resolve applies the shared decision order for a global/own flag pair:
//  1. global flag set -> grant for the bet and every leg
//  2. own flag unset  -> deny for the bet and every leg
//  3. own flag only   -> grant where attributedTo matches an alias
//
// perLeg controls whether parlay legs get their own attribution checks
// (edit and win/loss) or inherit nothing (featured, parlay-level only).
func resolve(profile *models.UserProfile, bet models.Bet, global, own bool, perLeg bool) PermissionDecision {
	var decision PermissionDecision

	if profile == nil {
		if perLeg && bet.IsParlay() {
			decision.PerLeg = make([]bool, len(bet.Legs))
		}
		return decision
	}

	if global {
		decision.Overall = true
		if perLeg && bet.IsParlay() {
			decision.PerLeg = make([]bool, len(bet.Legs))
			for i := range decision.PerLeg {
				decision.PerLeg[i] = true
			}
		}
		return decision
	}

	if !own {
		if perLeg && bet.IsParlay() {
			decision.PerLeg = make([]bool, len(bet.Legs))
		}
		return decision
	}

	// own-scoped only: attribution decides, independently per leg.
	decision.Overall = profile.HasAlias(bet.AttributedTo)
	if perLeg && bet.IsParlay() {
		decision.PerLeg = make([]bool, len(bet.Legs))
		for i, leg := range bet.Legs {
			decision.PerLeg[i] = profile.HasAlias(leg.AttributedTo)
		}
	}
	return decision
}

// CanEditBet decides whether the profile may edit the bet, with per-leg
// granularity for parlays.
func CanEditBet(profile *models.UserProfile, bet models.Bet) PermissionDecision {
	var global, own bool
	if profile != nil {
		global = profile.FeatureFlags.CanEditBets
		own = profile.FeatureFlags.CanEditBetsOwn
	}
	return resolve(profile, bet, global, own, true)
}

// CanMarkWinLoss decides whether the profile may settle the bet (or
// individual parlay legs) as won or lost.
func CanMarkWinLoss(profile *models.UserProfile, bet models.Bet) PermissionDecision {
	var global, own bool
	if profile != nil {
		global = profile.FeatureFlags.CanMarkWinLoss
		own = profile.FeatureFlags.CanMarkWinLossOwn
	}
	return resolve(profile, bet, global, own, true)
}

// CanMarkFeatured decides whether the profile may toggle the featured
// flag. Attribution is checked at the parlay level only, never per leg,
// so the decision is always a single boolean regardless of bet type.
func CanMarkFeatured(profile *models.UserProfile, bet models.Bet) PermissionDecision {
	var global, own bool
	if profile != nil {
		global = profile.FeatureFlags.CanMarkFeatured
		own = profile.FeatureFlags.CanMarkFeaturedOwn
	}
	return resolve(profile, bet, global, own, false)
}

// CanSeeManageBetsPage reports whether the manage page is visible at
// all: a plain OR of the global and own-scoped flags, with no
// attribution check. Row-level rights are decided separately.
func CanSeeManageBetsPage(profile *models.UserProfile) bool {
	if profile == nil {
		return false
	}
	return profile.FeatureFlags.CanSeeManageBetsPage || profile.FeatureFlags.CanSeeManageBetsPageOwn
}
