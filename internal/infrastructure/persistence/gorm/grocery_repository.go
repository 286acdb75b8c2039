package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/grocery"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
)

// GroceryListRepository implements grocery list persistence using GORM
type GroceryListRepository struct {
	db *gorm.DB
}

// NewGroceryListRepository creates a new grocery list repository
func NewGroceryListRepository(db *gorm.DB) outbound.GroceryListRepository {
	return &GroceryListRepository{db: db}
}

// Upsert replaces the list stored for (user, week start) in full. Category
// content from a prior generation never survives a regeneration.
func (r *GroceryListRepository) Upsert(ctx context.Context, list *grocery.List) (*grocery.List, error) {
	model := GroceryListToModel(list)
	model.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
		DoUpdates: clause.AssignmentColumns([]string{"categories", "created_at", "updated_at"}),
	}).Create(model)
	if result.Error != nil {
		return nil, result.Error
	}

	return ModelToGroceryList(model), nil
}

// Find returns the list for (user, week start), or nil when none exists
func (r *GroceryListRepository) Find(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*grocery.List, error) {
	var model GroceryListModel

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return ModelToGroceryList(&model), nil
}
