// Package services: services/betfilters.go
package services

import "betboard/models"

// ------------------- predicate filters -------------------

// FilterByStatus keeps bets matching the given status. The pending
// filter has a parlay special case: a parlay matches if its own status
// is pending OR any leg is still pending, so a partially settled parlay
// stays on the pending view.
func FilterByStatus(bets []models.Bet, status string) []models.Bet {
	if status == "" {
		return bets
	}
	var out []models.Bet
	for _, bet := range bets {
		if status == models.StatusPending {
			if bet.HasPendingState() {
				out = append(out, bet)
			}
			continue
		}
		if bet.Status == status {
			out = append(out, bet)
		}
	}
	return out
}

// FilterByAttribution keeps bets credited to name, either on the bet
// itself or, for parlays, on any leg. Matching is exact and
// case-sensitive.
func FilterByAttribution(bets []models.Bet, name string) []models.Bet {
	if name == "" {
		return bets
	}
	var out []models.Bet
	for _, bet := range bets {
		if bet.AttributedTo == name {
			out = append(out, bet)
			continue
		}
		if bet.IsParlay() {
			for _, leg := range bet.Legs {
				if leg.AttributedTo == name {
					out = append(out, bet)
					break
				}
			}
		}
	}
	return out
}

// ------------------- display grouping -------------------

// BetGroups is the dashboard display grouping: featured bets first,
// then the remaining singles and parlays.
type BetGroups struct {
	Featured []models.Bet
	Singles  []models.Bet
	Parlays  []models.Bet
}

// PartitionFeatured splits bets into display groups. This is a stable
// partition, not a sort: relative order within each group is the input
// order.
func PartitionFeatured(bets []models.Bet) BetGroups {
	var groups BetGroups
	for _, bet := range bets {
		switch {
		case bet.Featured:
			groups.Featured = append(groups.Featured, bet)
		case bet.IsParlay():
			groups.Parlays = append(groups.Parlays, bet)
		default:
			groups.Singles = append(groups.Singles, bet)
		}
	}
	return groups
}

// SortPendingFirst orders bets with any pending state ahead of fully
// settled ones without disturbing relative order within either group.
// Used only by the admin list. Returns a new slice.
func SortPendingFirst(bets []models.Bet) []models.Bet {
	out := make([]models.Bet, 0, len(bets))
	for _, bet := range bets {
		if bet.HasPendingState() {
			out = append(out, bet)
		}
	}
	for _, bet := range bets {
		if !bet.HasPendingState() {
			out = append(out, bet)
		}
	}
	return out
}
