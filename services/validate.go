// Package services: services/validate.go
package services

import (
	"fmt"
	"strings"

	"betboard/models"
)

// ------------------- validation error -------------------

// ValidationError marks input the caller can fix; controllers map it
// to a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ------------------- bet validation -------------------

// ValidateLeg checks a parlay leg's required fields.
func ValidateLeg(leg models.Leg) error {
	if strings.TrimSpace(leg.Sport) == "" {
		return invalid("sport must be a non-empty string")
	}
	if strings.TrimSpace(leg.Teams) == "" {
		return invalid("teams must be a non-empty string")
	}
	if strings.TrimSpace(leg.Selection) == "" {
		return invalid("selection must be a non-empty string")
	}
	if leg.BetType == "" {
		return invalid("missing required field: betType")
	}
	return nil
}

func validateSingle(bet models.Bet) error {
	if bet.Amount <= 0 {
		return invalid("amount must be a positive number")
	}
	if !ValidDate(bet.Date) {
		return invalid("date must be in YYYY-MM-DD format")
	}
	if strings.TrimSpace(bet.Sport) == "" {
		return invalid("missing required field: sport")
	}
	if strings.TrimSpace(bet.Teams) == "" {
		return invalid("missing required field: teams")
	}
	if bet.BetType == "" {
		return invalid("missing required field: betType")
	}
	if strings.TrimSpace(bet.Selection) == "" {
		return invalid("missing required field: selection")
	}
	return nil
}

func validateParlay(bet models.Bet) error {
	if bet.Amount <= 0 {
		return invalid("amount must be a positive number")
	}
	if !ValidDate(bet.Date) {
		return invalid("date must be in YYYY-MM-DD format")
	}
	if len(bet.Legs) < 2 {
		return invalid("parlay must have at least 2 legs")
	}
	for i, leg := range bet.Legs {
		if err := ValidateLeg(leg); err != nil {
			return invalid("leg %d: %v", i+1, err)
		}
	}
	return nil
}

// ValidateBet checks a single or parlay bet before it is persisted.
func ValidateBet(bet models.Bet) error {
	switch bet.Type {
	case models.BetTypeSingle:
		return validateSingle(bet)
	case models.BetTypeParlay:
		return validateParlay(bet)
	default:
		return invalid("type must be 'single' or 'parlay'")
	}
}
