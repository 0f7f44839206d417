// Package services: services/betslip.go
package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"betboard/models"
)

// Caps on what a single slip may yield; anything beyond is dropped
// with a warning.
const (
	maxBetsPerSlip   = 20
	maxLegsPerParlay = 20
)

// BetSlipParseError is raised when the extractor output cannot be
// parsed at all. Per-bet problems never raise it; they become warnings
// on the candidate instead.
type BetSlipParseError struct {
	Message string
}

func (e *BetSlipParseError) Error() string { return e.Message }

func parseError(format string, args ...interface{}) error {
	return &BetSlipParseError{Message: fmt.Sprintf(format, args...)}
}

// BetCandidate is a bet extracted from a slip image. Invalid candidates
// are still returned so the user can correct them in the form;
// ValidationError carries what is wrong.
type BetCandidate struct {
	models.Bet
	ValidationError string `json:"_validationError,omitempty"`
}

// ------------------- raw model output shapes -------------------

type rawLeg struct {
	ID                 string   `json:"id"`
	Sport              string   `json:"sport"`
	Teams              string   `json:"teams"`
	BetType            string   `json:"betType"`
	Selection          string   `json:"selection"`
	Odds               *float64 `json:"odds"`
	AttributedTo       string   `json:"attributedTo"`
	CombinedOdds       *float64 `json:"combinedOdds"`
	SameGameParlayOdds *float64 `json:"sameGameParlayOdds"`
}

type rawBet struct {
	Type               string   `json:"type"`
	Amount             float64  `json:"amount"`
	Date               string   `json:"date"`
	Status             string   `json:"status"`
	AttributedTo       string   `json:"attributedTo"`
	Sport              string   `json:"sport"`
	Teams              string   `json:"teams"`
	BetType            string   `json:"betType"`
	Selection          string   `json:"selection"`
	Odds               *float64 `json:"odds"`
	Legs               []rawLeg `json:"legs"`
	CombinedOdds       *float64 `json:"combinedOdds"`
	SameGameParlayOdds *float64 `json:"sameGameParlayOdds"`
	ParlayOdds         *float64 `json:"parlayOdds"`
}

type rawSlip struct {
	Bets *[]rawBet `json:"bets"`
}

// ------------------- parsing -------------------

// ParseBetsFromModelOutput parses and validates bet candidates from the
// raw extractor output. Candidates that fail validation are kept with
// their error attached so nothing the model saw is silently dropped.
// Returns the candidates plus human-readable warnings; an error only
// when the output is unusable as a whole.
func ParseBetsFromModelOutput(modelOutput string) ([]BetCandidate, []string, error) {
	var slip rawSlip
	if err := json.Unmarshal([]byte(modelOutput), &slip); err != nil {
		return nil, nil, parseError("model output is not valid JSON: %v", err)
	}
	if slip.Bets == nil {
		return nil, nil, parseError("model output must contain a 'bets' array")
	}

	raws := *slip.Bets
	var warnings []string
	if len(raws) > maxBetsPerSlip {
		warnings = append(warnings, fmt.Sprintf("Model returned %d bets, but only the first %d will be used.", len(raws), maxBetsPerSlip))
		raws = raws[:maxBetsPerSlip]
	}

	var candidates []BetCandidate
	for idx, raw := range raws {
		if raw.Type == models.BetTypeParlay && len(raw.Legs) > maxLegsPerParlay {
			warnings = append(warnings, fmt.Sprintf("Bet %d: parlay has %d legs; only first %d will be used.", idx+1, len(raw.Legs), maxLegsPerParlay))
			raw.Legs = raw.Legs[:maxLegsPerParlay]
		}

		candidate := normalizeCandidate(raw)
		if candidate.ValidationError != "" {
			warnings = append(warnings, fmt.Sprintf("Bet %d has validation errors: %s", idx+1, candidate.ValidationError))
		}
		candidates = append(candidates, candidate)
	}

	return candidates, warnings, nil
}

func normalizeCandidate(raw rawBet) BetCandidate {
	status := raw.Status
	if status == "" {
		status = models.StatusPending
	}

	bet := models.Bet{
		Type:         raw.Type,
		Amount:       raw.Amount,
		Date:         raw.Date,
		Status:       status,
		AttributedTo: raw.AttributedTo,
	}

	switch raw.Type {
	case models.BetTypeSingle:
		bet.Sport = raw.Sport
		bet.Teams = raw.Teams
		bet.BetType = raw.BetType
		bet.Selection = raw.Selection
		if raw.Odds != nil {
			bet.Odds = *raw.Odds
		}
	case models.BetTypeParlay:
		bet.Legs = normalizeLegs(raw)
	default:
		return BetCandidate{Bet: bet, ValidationError: "bet 'type' must be 'single' or 'parlay'"}
	}

	candidate := BetCandidate{Bet: bet}
	if err := ValidateBet(bet); err != nil {
		candidate.ValidationError = err.Error()
	}
	return candidate
}

func normalizeLegs(raw rawBet) []models.Leg {
	legs := make([]models.Leg, len(raw.Legs))
	for i, rl := range raw.Legs {
		id := rl.ID
		if id == "" {
			id = uuid.NewString()
		}
		legs[i] = models.Leg{
			ID:           id,
			Sport:        rl.Sport,
			Teams:        rl.Teams,
			BetType:      rl.BetType,
			Selection:    rl.Selection,
			AttributedTo: rl.AttributedTo,
		}
		if rl.Odds != nil {
			legs[i].Odds = *rl.Odds
		}
	}

	// parlay-level combined odds, if the model put them there
	var parlayCombined float64
	switch {
	case raw.CombinedOdds != nil:
		parlayCombined = *raw.CombinedOdds
	case raw.SameGameParlayOdds != nil:
		parlayCombined = *raw.SameGameParlayOdds
	case raw.ParlayOdds != nil:
		parlayCombined = *raw.ParlayOdds
	}

	fillSameGameOdds(legs, raw.Legs, parlayCombined)
	return legs
}

// fillSameGameOdds recovers per-leg odds for same-game parlays, where a
// slip often shows one combined price for several legs of the same
// game. Legs are grouped by their teams field; within a group the
// combined odds come from a leg-level combinedOdds field, from the
// all-legs-carry-the-identical-odds heuristic (the model extracted the
// combined price as each leg's price), or from the parlay-level
// combined odds when every leg in the group is missing odds. The
// combined price is then split into equal per-leg odds.
func fillSameGameOdds(legs []models.Leg, raws []rawLeg, parlayCombined float64) {
	groups := make(map[string][]int)
	var order []string
	for i, leg := range legs {
		if leg.Teams == "" {
			continue
		}
		if _, seen := groups[leg.Teams]; !seen {
			order = append(order, leg.Teams)
		}
		groups[leg.Teams] = append(groups[leg.Teams], i)
	}

	for _, teams := range order {
		indices := groups[teams]
		if len(indices) < 2 {
			continue
		}

		var missing []int
		var present []float64
		for _, i := range indices {
			if legs[i].Odds == 0 {
				missing = append(missing, i)
			} else {
				present = append(present, legs[i].Odds)
			}
		}

		var combined float64
		replaceAll := false

		// leg-level combined odds win
		for _, i := range indices {
			if raws[i].CombinedOdds != nil {
				combined = *raws[i].CombinedOdds
				break
			}
			if raws[i].SameGameParlayOdds != nil {
				combined = *raws[i].SameGameParlayOdds
				break
			}
		}

		// identical odds on every leg means the model copied the
		// combined price into each leg
		if combined == 0 && len(present) == len(indices) {
			allSame := true
			for _, o := range present[1:] {
				if o != present[0] {
					allSame = false
					break
				}
			}
			if allSame {
				combined = present[0]
				replaceAll = true
			}
		}

		// fall back to parlay-level combined odds when the whole group
		// is missing odds
		if combined == 0 && parlayCombined != 0 && len(missing) == len(indices) {
			combined = parlayCombined
			replaceAll = true
		}

		if combined == 0 {
			continue
		}
		perLeg := ReverseEqualLegOdds(combined, len(indices))
		if perLeg == 0 {
			continue
		}
		if replaceAll {
			for _, i := range indices {
				legs[i].Odds = perLeg
			}
		} else {
			for _, i := range missing {
				legs[i].Odds = perLeg
			}
		}
	}
}
