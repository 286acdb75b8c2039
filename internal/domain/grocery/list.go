// Package grocery contains the domain model for generated grocery lists.
// At most one list exists per (user, week start date); regenerating a week
// replaces the prior list in full.
package grocery

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/mealplan"
)

// Category is a named group of shopping items, e.g. "Proteins" or "Vegetables".
type Category struct {
	Name  string   `json:"category"`
	Items []string `json:"items"`
}

// List is a categorized grocery list for one user's week.
type List struct {
	userID     uuid.UUID
	weekStart  time.Time // normalized to UTC midnight
	categories []Category
	createdAt  time.Time
}

// NewList creates a grocery list from merge-backend output. Categories with a
// blank name or an empty item list are discarded and never persisted.
func NewList(userID uuid.UUID, weekStart time.Time, categories []Category) (*List, error) {
	if weekStart.IsZero() {
		return nil, ErrZeroWeekStart
	}

	kept := make([]Category, 0, len(categories))
	for _, c := range categories {
		if strings.TrimSpace(c.Name) == "" || len(c.Items) == 0 {
			continue
		}
		kept = append(kept, c)
	}

	return &List{
		userID:     userID,
		weekStart:  mealplan.TruncateToDay(weekStart),
		categories: kept,
		createdAt:  time.Now().UTC(),
	}, nil
}

// Reconstitute rebuilds a List from persisted state.
func Reconstitute(userID uuid.UUID, weekStart time.Time, categories []Category, createdAt time.Time) *List {
	return &List{
		userID:     userID,
		weekStart:  mealplan.TruncateToDay(weekStart),
		categories: categories,
		createdAt:  createdAt,
	}
}

// UserID returns the owning user's ID
func (l *List) UserID() uuid.UUID {
	return l.userID
}

// WeekStart returns the week start date (UTC midnight)
func (l *List) WeekStart() time.Time {
	return l.weekStart
}

// Categories returns the ordered category groups
func (l *List) Categories() []Category {
	return l.categories
}

// CreatedAt returns the creation timestamp
func (l *List) CreatedAt() time.Time {
	return l.createdAt
}

// IsEmpty reports whether no categories survived elision.
func (l *List) IsEmpty() bool {
	return len(l.categories) == 0
}
