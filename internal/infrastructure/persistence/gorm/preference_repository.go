package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/user"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
)

// PreferenceRepository implements preference persistence using GORM
type PreferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *gorm.DB) outbound.PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Find returns the stored preference row, or nil when the user has never
// written preferences
func (r *PreferenceRepository) Find(ctx context.Context, userID uuid.UUID) (*user.Preferences, error) {
	var model PreferenceModel

	result := r.db.WithContext(ctx).First(&model, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return ModelToPreferences(&model), nil
}

// Upsert writes the full preference row keyed by user ID
func (r *PreferenceRepository) Upsert(ctx context.Context, prefs *user.Preferences) error {
	model := PreferencesToModel(prefs)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"protein_preferences", "cuisine_preferences", "dietary_restrictions", "updated_at",
		}),
	}).Create(model)
	return result.Error
}
