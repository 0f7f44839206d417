// Package models defines data structures used across the application.
// File: models/user.go
package models

// ----------------------- roles -----------------------

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ----------------------- feature flags -----------------------

// FeatureFlags is the fixed set of capability switches on a profile.
// Each capability comes in a global variant (acts on every record) and
// an "-Own" variant (acts only on records attributed to one of the
// user's aliases). CanManageBets is legacy and kept for stored profiles
// that still carry it.
type FeatureFlags struct {
	CanCreateBets        bool `json:"canCreateBets"`
	CanManageBets        bool `json:"canManageBets"`
	CanDeleteBets        bool `json:"canDeleteBets"`
	CanClearWeek         bool `json:"canClearWeek"`
	CanBetslipImport     bool `json:"canBetslipImport"`
	CanSeeManageBetsPage bool `json:"canSeeManageBetsPage"`
	CanEditBets          bool `json:"canEditBets"`
	CanMarkFeatured      bool `json:"canMarkFeatured"`
	CanMarkWinLoss       bool `json:"canMarkWinLoss"`

	CanCreateBetsOwn        bool `json:"canCreateBetsOwn"`
	CanManageBetsOwn        bool `json:"canManageBetsOwn"`
	CanDeleteBetsOwn        bool `json:"canDeleteBetsOwn"`
	CanClearWeekOwn         bool `json:"canClearWeekOwn"`
	CanBetslipImportOwn     bool `json:"canBetslipImportOwn"`
	CanSeeManageBetsPageOwn bool `json:"canSeeManageBetsPageOwn"`
	CanEditBetsOwn          bool `json:"canEditBetsOwn"`
	CanMarkFeaturedOwn      bool `json:"canMarkFeaturedOwn"`
	CanMarkWinLossOwn       bool `json:"canMarkWinLossOwn"`
}

// DefaultFeatureFlags returns the default flag set for a role. Admins get
// every global capability; regular users can only create bets. Role
// changes reset the profile's flags to these defaults.
func DefaultFeatureFlags(role string) FeatureFlags {
	if role == RoleAdmin {
		return FeatureFlags{
			CanCreateBets:        true,
			CanManageBets:        true,
			CanDeleteBets:        true,
			CanClearWeek:         true,
			CanBetslipImport:     true,
			CanSeeManageBetsPage: true,
			CanEditBets:          true,
			CanMarkFeatured:      true,
			CanMarkWinLoss:       true,
		}
	}
	return FeatureFlags{
		CanCreateBets: true,
	}
}

// ----------------------- user profile -----------------------

// UserProfile holds a user's role, capability flags and the alias list
// used for attribution matching.
type UserProfile struct {
	UserID       string       `json:"userId"`
	Email        string       `json:"email"`
	Role         string       `json:"role"`
	FeatureFlags FeatureFlags `json:"featureFlags"`
	Aliases      []string     `json:"aliases,omitempty"`
	CreatedAt    string       `json:"createdAt"`
	UpdatedAt    string       `json:"updatedAt"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *UserProfile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// HasAlias reports whether name exactly matches one of the profile's
// aliases. Matching is case-sensitive; an empty name never matches.
func (p *UserProfile) HasAlias(name string) bool {
	if p == nil || name == "" {
		return false
	}
	for _, alias := range p.Aliases {
		if alias == name {
			return true
		}
	}
	return false
}
