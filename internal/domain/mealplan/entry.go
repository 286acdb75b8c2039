// Package mealplan contains the core domain logic for the meal calendar.
// A calendar entry maps (user, scheduled date, meal slot) to a recipe; the
// triple is unique, so scheduling into an occupied slot replaces the previous
// recipe rather than creating a duplicate.
package mealplan

import (
	"time"

	"github.com/google/uuid"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/recipe"
)

// Entry represents a single scheduled meal.
type Entry struct {
	userID    uuid.UUID
	date      time.Time // normalized to UTC midnight
	slot      Slot
	recipeID  uuid.UUID
	createdAt time.Time
}

// NewEntry creates a calendar entry with validation. The date is truncated to
// its calendar day; the time-of-day portion never participates in the key.
func NewEntry(userID uuid.UUID, date time.Time, slot Slot, recipeID uuid.UUID) (*Entry, error) {
	if date.IsZero() {
		return nil, ErrZeroDate
	}
	if !slot.IsValid() {
		return nil, ErrUnknownSlot
	}
	if recipeID == uuid.Nil {
		return nil, ErrMissingRecipe
	}

	return &Entry{
		userID:    userID,
		date:      TruncateToDay(date),
		slot:      slot,
		recipeID:  recipeID,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstituteEntry rebuilds an Entry from persisted state.
func ReconstituteEntry(userID uuid.UUID, date time.Time, slot Slot, recipeID uuid.UUID, createdAt time.Time) *Entry {
	return &Entry{
		userID:    userID,
		date:      TruncateToDay(date),
		slot:      slot,
		recipeID:  recipeID,
		createdAt: createdAt,
	}
}

// UserID returns the owning user's ID
func (e *Entry) UserID() uuid.UUID {
	return e.userID
}

// Date returns the scheduled calendar day (UTC midnight)
func (e *Entry) Date() time.Time {
	return e.date
}

// Slot returns the meal slot
func (e *Entry) Slot() Slot {
	return e.slot
}

// RecipeID returns the referenced recipe's ID
func (e *Entry) RecipeID() uuid.UUID {
	return e.recipeID
}

// CreatedAt returns the creation timestamp
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// ScheduledMeal is a calendar entry expanded with its referenced recipe, as
// returned by range listings.
type ScheduledMeal struct {
	Entry  *Entry
	Recipe *recipe.Recipe
}

// TruncateToDay normalizes a timestamp to UTC midnight of its calendar day.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// FormatDate renders a calendar day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WeekEnd returns the last day of the 7-day window starting at weekStart,
// inclusive on both ends.
func WeekEnd(weekStart time.Time) time.Time {
	return TruncateToDay(weekStart).AddDate(0, 0, 6)
}
