package user

import "github.com/google/uuid"

// Preferences holds a user's meal-planning preference tags. Exactly one row
// exists per user; each tag list is replaced wholesale when present in an
// update, never merged element-wise.
type Preferences struct {
	UserID              uuid.UUID `json:"user_id"`
	ProteinPreferences  []string  `json:"protein_preferences"`
	CuisinePreferences  []string  `json:"cuisine_preferences"`
	DietaryRestrictions []string  `json:"dietary_restrictions"`
}

// DefaultPreferences returns the well-defined empty preference set used when
// a user has never stored preferences. Reads never fail with not-found.
func DefaultPreferences(userID uuid.UUID) *Preferences {
	return &Preferences{
		UserID:              userID,
		ProteinPreferences:  []string{},
		CuisinePreferences:  []string{},
		DietaryRestrictions: []string{},
	}
}

// PreferencesUpdate carries a partial preference update. Nil fields are left
// untouched; non-nil fields replace the stored list wholesale.
type PreferencesUpdate struct {
	ProteinPreferences  *[]string
	CuisinePreferences  *[]string
	DietaryRestrictions *[]string
}

// Apply merges an update into the preference set, replacing only the
// supplied lists.
func (p *Preferences) Apply(update PreferencesUpdate) {
	if update.ProteinPreferences != nil {
		p.ProteinPreferences = *update.ProteinPreferences
	}
	if update.CuisinePreferences != nil {
		p.CuisinePreferences = *update.CuisinePreferences
	}
	if update.DietaryRestrictions != nil {
		p.DietaryRestrictions = *update.DietaryRestrictions
	}
}
