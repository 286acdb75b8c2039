package gorm

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/mealplan"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
)

// CalendarRepository implements the meal calendar repository using GORM
type CalendarRepository struct {
	db *gorm.DB
}

// NewCalendarRepository creates a new calendar repository
func NewCalendarRepository(db *gorm.DB) outbound.CalendarRepository {
	return &CalendarRepository{db: db}
}

// Upsert inserts the entry, or replaces the recipe reference when the
// (user, scheduled date, meal slot) key is already occupied. The conflict
// clause makes this a single atomic statement under concurrent writers.
func (r *CalendarRepository) Upsert(ctx context.Context, entry *mealplan.Entry) (*mealplan.Entry, error) {
	model := EntryToModel(entry)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "scheduled_date"}, {Name: "meal_slot"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"recipe_id", "created_at"}),
	}).Create(model)
	if result.Error != nil {
		return nil, result.Error
	}

	return ModelToEntry(model), nil
}

// Delete removes the entry at the exact key. Deleting an absent key is a
// no-op, not an error.
func (r *CalendarRepository) Delete(ctx context.Context, userID uuid.UUID, date time.Time, slot mealplan.Slot) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND scheduled_date = ? AND meal_slot = ?", userID, date, string(slot)).
		Delete(&CalendarEntryModel{})
	return result.Error
}

// ListRange returns the user's entries with dates in the inclusive [from, to]
// range, joined with their recipes, ordered by date then slot.
func (r *CalendarRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*mealplan.ScheduledMeal, error) {
	var models []CalendarEntryModel

	result := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ? AND scheduled_date >= ? AND scheduled_date <= ?", userID, from, to).
		Order("scheduled_date ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	meals := make([]*mealplan.ScheduledMeal, len(models))
	for i := range models {
		meals[i] = &mealplan.ScheduledMeal{
			Entry:  ModelToEntry(&models[i]),
			Recipe: ModelToRecipe(&models[i].Recipe),
		}
	}
	// Slot rank is a domain notion, not a column collation, so same-day
	// ordering is resolved in memory.
	sort.SliceStable(meals, func(i, j int) bool {
		if !meals[i].Entry.Date().Equal(meals[j].Entry.Date()) {
			return meals[i].Entry.Date().Before(meals[j].Entry.Date())
		}
		return meals[i].Entry.Slot().Order() < meals[j].Entry.Slot().Order()
	})
	return meals, nil
}
