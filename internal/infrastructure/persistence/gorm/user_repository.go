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

// UserRepository implements user persistence using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

// Upsert writes the user row, refreshing profile fields on conflict. Billing
// and quota columns are deliberately excluded from the update set; they
// change only through their own flows.
func (r *UserRepository) Upsert(ctx context.Context, u *user.User) error {
	model := UserToModel(u)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "first_name", "last_name", "profile_image_url", "updated_at",
		}),
	}).Create(model)
	return result.Error
}

// FindByID finds a user by ID, returning nil when absent
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var model UserModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return ModelToUser(&model), nil
}

// ConsumeCredits atomically deducts n meal credits and adds n to the
// lifetime usage counter. The balance never drops below zero.
func (r *UserRepository) ConsumeCredits(ctx context.Context, id uuid.UUID, n int) error {
	result := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"meal_credits":     gorm.Expr("CASE WHEN meal_credits >= ? THEN meal_credits - ? ELSE 0 END", n, n),
			"total_meals_used": gorm.Expr("total_meals_used + ?", n),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
