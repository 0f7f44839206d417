// file: models/bet_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegEffectiveStatus(t *testing.T) {
	assert.Equal(t, StatusPending, Leg{}.EffectiveStatus())
	assert.Equal(t, StatusWon, Leg{Status: StatusWon}.EffectiveStatus())
}

func TestBetHasPendingState(t *testing.T) {
	assert.True(t, Bet{Status: StatusPending}.HasPendingState())
	assert.False(t, Bet{Status: StatusWon, Type: BetTypeSingle}.HasPendingState())

	// a settled parlay with an unsettled leg still counts as pending
	parlay := Bet{
		Type:   BetTypeParlay,
		Status: StatusWon,
		Legs:   []Leg{{Status: StatusWon}, {}},
	}
	assert.True(t, parlay.HasPendingState())

	settled := Bet{
		Type:   BetTypeParlay,
		Status: StatusLost,
		Legs:   []Leg{{Status: StatusWon}, {Status: StatusLost}},
	}
	assert.False(t, settled.HasPendingState())
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusWon))
	assert.True(t, ValidStatus(StatusLost))
	assert.False(t, ValidStatus("voided"))
	assert.False(t, ValidStatus(""))
}

func TestHasAlias(t *testing.T) {
	profile := &UserProfile{Aliases: []string{"Mike", "Big Mike"}}

	assert.True(t, profile.HasAlias("Mike"))
	assert.True(t, profile.HasAlias("Big Mike"))
	assert.False(t, profile.HasAlias("mike"))
	assert.False(t, profile.HasAlias(""))

	var nilProfile *UserProfile
	assert.False(t, nilProfile.HasAlias("Mike"))
	assert.False(t, (&UserProfile{}).HasAlias("Mike"))
}

func TestDefaultFeatureFlags(t *testing.T) {
	admin := DefaultFeatureFlags(RoleAdmin)
	assert.True(t, admin.CanCreateBets)
	assert.True(t, admin.CanDeleteBets)
	assert.True(t, admin.CanMarkWinLoss)
	assert.False(t, admin.CanCreateBetsOwn)

	user := DefaultFeatureFlags(RoleUser)
	assert.True(t, user.CanCreateBets)
	assert.False(t, user.CanDeleteBets)
	assert.False(t, user.CanMarkFeatured)
}
