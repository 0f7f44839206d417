// Package services: services/payout.go
package services

import (
	"math"

	"betboard/models"
)

// ------------------- American odds conversions -------------------

// AmericanToDecimal converts American odds to decimal odds.
// Odds of exactly 0 are degenerate; callers must check first.
func AmericanToDecimal(odds float64) float64 {
	if odds > 0 {
		return odds/100 + 1
	}
	return 100/math.Abs(odds) + 1
}

// DecimalToAmerican converts decimal odds back to American odds.
// Decimal odds at or below 1.0 have no American representation and
// return 0.
func DecimalToAmerican(decimal float64) float64 {
	if decimal <= 1.0 {
		return 0
	}
	if decimal >= 2.0 {
		return (decimal - 1) * 100
	}
	return -100 / (decimal - 1)
}

// ReverseEqualLegOdds recovers per-leg American odds from a parlay's
// combined odds, assuming every leg carries equal odds: for N legs with
// combined decimal odds D, each leg is D^(1/N). Used by betslip import
// when a same-game parlay only shows combined odds. Returns 0 when the
// combined odds are 0 or numLegs < 2.
func ReverseEqualLegOdds(combinedOdds float64, numLegs int) float64 {
	if combinedOdds == 0 || numLegs < 2 {
		return 0
	}
	combinedDecimal := AmericanToDecimal(combinedOdds)
	legDecimal := math.Pow(combinedDecimal, 1.0/float64(numLegs))
	return math.Round(DecimalToAmerican(legDecimal)*100) / 100
}

// ------------------- payout calculation -------------------

// PayoutForSingle computes the potential payout (stake included) of a
// single bet from its wagered amount and American odds. Odds of exactly
// 0 are invalid input and yield a 0 payout rather than a division by
// zero.
func PayoutForSingle(amount, odds float64) float64 {
	if odds == 0 {
		return 0
	}
	if odds > 0 {
		return amount*odds/100 + amount
	}
	return amount*100/math.Abs(odds) + amount
}

// PayoutForParlay computes the potential payout of a parlay: the product
// of every leg's decimal odds times the wagered amount, rounded to two
// decimal places. Any leg with odds of exactly 0 short-circuits the
// whole payout to 0.
//
// TODO(product): confirm whether a zero-odds leg should instead reject
// the write; today it silently zeroes the payout.
func PayoutForParlay(amount float64, legs []models.Leg) float64 {
	if len(legs) == 0 {
		return 0
	}
	combined := 1.0
	for _, leg := range legs {
		if leg.Odds == 0 {
			return 0
		}
		combined *= AmericanToDecimal(leg.Odds)
	}
	return math.Round(amount*combined*100) / 100
}

// PayoutForBet recomputes the potential payout for a bet of either
// type. The persisted payout field is derived state; every write path
// that touches amount or odds goes through here.
func PayoutForBet(bet models.Bet) float64 {
	if bet.IsParlay() {
		return PayoutForParlay(bet.Amount, bet.Legs)
	}
	return PayoutForSingle(bet.Amount, bet.Odds)
}
