package gorm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/recipe"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
)

// FavoriteRepository implements the favorites ledger using GORM
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) outbound.FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add inserts the (user, recipe) pair. A duplicate add hits the composite
// primary key and is swallowed by the conflict clause, making the operation
// an idempotent no-op.
func (r *FavoriteRepository) Add(ctx context.Context, userID, recipeID uuid.UUID) error {
	model := &FavoriteModel{
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now().UTC(),
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoNothing: true,
	}).Create(model)
	return result.Error
}

// Remove deletes the pair. Removing an absent pair is a no-op.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&FavoriteModel{})
	return result.Error
}

// List returns the user's favorites joined with full recipes, most recently
// favorited first
func (r *FavoriteRepository) List(ctx context.Context, userID uuid.UUID) ([]*recipe.Recipe, error) {
	var models []FavoriteModel

	result := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i].Recipe)
	}
	return recipes, nil
}
