// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/grocery"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/mealplan"
)

// RecipeService defines the use cases for recipe records, favorites and
// AI-backed suggestions.
type RecipeService interface {
	// Commands
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	SuggestMeals(ctx context.Context, cmd SuggestMealsCommand) ([]RecipeDTO, error)
	AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error

	// Queries
	GetRecipeByID(ctx context.Context, recipeID uuid.UUID) (*RecipeDTO, error)
	ListRecipes(ctx context.Context, query ListRecipesQuery) ([]RecipeDTO, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]RecipeDTO, error)
}

// MealPlanService defines the use cases for the meal calendar.
type MealPlanService interface {
	// ScheduleMeal upserts the entry at (user, date, slot): an occupied slot
	// is replaced, never duplicated.
	ScheduleMeal(ctx context.Context, cmd ScheduleMealCommand) (*CalendarEntryDTO, error)

	// UnscheduleMeal removes the entry at the exact key; removing an absent
	// key succeeds.
	UnscheduleMeal(ctx context.Context, cmd UnscheduleMealCommand) error

	// ListCalendar returns scheduled meals with dates in the inclusive
	// [From, To] range, joined with full recipes, ordered by date then slot.
	ListCalendar(ctx context.Context, query ListCalendarQuery) ([]CalendarEntryDTO, error)
}

// GroceryService defines the use cases for grocery list generation.
type GroceryService interface {
	// GenerateGroceryList resolves a recipe set (explicit IDs, or the week's
	// calendar), merges ingredients through the external backend, and
	// persists the categorized result, replacing any list stored for the
	// same (user, week start).
	GenerateGroceryList(ctx context.Context, cmd GenerateGroceryListCommand) (*GroceryListDTO, error)

	GetGroceryList(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*GroceryListDTO, error)
}

// UserService defines the use cases for user records and preferences.
type UserService interface {
	// EnsureUser upserts a user record from resolved identity claims,
	// creating the trial account on first sight.
	EnsureUser(ctx context.Context, cmd EnsureUserCommand) (*UserDTO, error)

	GetUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error)

	// GetPreferences returns stored preferences, or the empty default for
	// users who have never saved any. It never fails with not-found.
	GetPreferences(ctx context.Context, userID uuid.UUID) (*PreferencesDTO, error)

	// SetPreferences upserts preferences; each supplied tag list replaces the
	// stored one wholesale.
	SetPreferences(ctx context.Context, cmd SetPreferencesCommand) (*PreferencesDTO, error)
}

// Command objects for operations

// CreateRecipeCommand contains data for manual recipe entry.
type CreateRecipeCommand struct {
	Title        string
	Description  string
	Cuisine      string
	Protein      string
	CookingTime  int
	Rating       float64
	Ingredients  []string
	Instructions string
	ImageURL     string
	SourceURL    string
	OwnerID      *uuid.UUID
}

// SuggestMealsCommand requests AI meal suggestions for a user.
type SuggestMealsCommand struct {
	UserID              uuid.UUID
	Count               int
	ProteinPreferences  []string
	CuisinePreferences  []string
	DietaryRestrictions []string
}

// ScheduleMealCommand schedules a recipe into a calendar slot.
type ScheduleMealCommand struct {
	UserID   uuid.UUID
	Date     time.Time
	Slot     mealplan.Slot
	RecipeID uuid.UUID
}

// UnscheduleMealCommand removes a calendar entry by its key.
type UnscheduleMealCommand struct {
	UserID uuid.UUID
	Date   time.Time
	Slot   mealplan.Slot
}

// ListCalendarQuery selects calendar entries by inclusive date range.
type ListCalendarQuery struct {
	UserID uuid.UUID
	From   time.Time
	To     time.Time
}

// GenerateGroceryListCommand requests grocery list generation. A non-nil
// RecipeIDs selects the explicit-selection mode (an empty list is rejected);
// a nil RecipeIDs selects the calendar week starting at WeekStart. WeekStart
// keys the persisted list in both modes.
type GenerateGroceryListCommand struct {
	UserID    uuid.UUID
	RecipeIDs *[]uuid.UUID
	WeekStart time.Time
}

// EnsureUserCommand upserts a user record from identity claims.
type EnsureUserCommand struct {
	UserID          uuid.UUID
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

// SetPreferencesCommand carries a partial preference update; nil lists are
// left untouched.
type SetPreferencesCommand struct {
	UserID              uuid.UUID
	ProteinPreferences  *[]string
	CuisinePreferences  *[]string
	DietaryRestrictions *[]string
}

// ListRecipesQuery filters stored recipes.
type ListRecipesQuery struct {
	Cuisine string
	Protein string
	Limit   int
}

// Response DTOs

// RecipeDTO is the data transfer object for recipes.
type RecipeDTO struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Cuisine      string     `json:"cuisine,omitempty"`
	Protein      string     `json:"protein,omitempty"`
	CookingTime  int        `json:"cooking_time"`
	Rating       float64    `json:"rating"`
	Ingredients  []string   `json:"ingredients"`
	Instructions string     `json:"instructions,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	SourceURL    string     `json:"source_url,omitempty"`
	OwnerID      *uuid.UUID `json:"owner_id,omitempty"`
	CreatedAt    string     `json:"created_at"`
}

// CalendarEntryDTO is a scheduled meal joined with its recipe.
type CalendarEntryDTO struct {
	UserID        uuid.UUID `json:"user_id"`
	ScheduledDate string    `json:"scheduled_date"`
	MealSlot      string    `json:"meal_slot"`
	Recipe        RecipeDTO `json:"recipe"`
}

// GroceryCategoryDTO is one category group of a grocery list.
type GroceryCategoryDTO struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// GroceryListDTO is the persisted grocery list for one week.
type GroceryListDTO struct {
	UserID     uuid.UUID            `json:"user_id"`
	WeekStart  string               `json:"week_start_date"`
	Categories []GroceryCategoryDTO `json:"categories"`
	CreatedAt  string               `json:"created_at"`
}

// UserDTO is the user record exposed to clients.
type UserDTO struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FirstName          string    `json:"first_name,omitempty"`
	LastName           string    `json:"last_name,omitempty"`
	ProfileImageURL    string    `json:"profile_image_url,omitempty"`
	SubscriptionStatus string    `json:"subscription_status"`
	SubscriptionPlan   string    `json:"subscription_plan"`
	MealCredits        int       `json:"meal_credits"`
	TotalMealsUsed     int       `json:"total_meals_used"`
}

// PreferencesDTO is the stored preference set.
type PreferencesDTO struct {
	UserID              uuid.UUID `json:"user_id"`
	ProteinPreferences  []string  `json:"protein_preferences"`
	CuisinePreferences  []string  `json:"cuisine_preferences"`
	DietaryRestrictions []string  `json:"dietary_restrictions"`
}

// CategoriesFromDomain converts domain categories to DTOs.
func CategoriesFromDomain(categories []grocery.Category) []GroceryCategoryDTO {
	out := make([]GroceryCategoryDTO, len(categories))
	for i, c := range categories {
		out[i] = GroceryCategoryDTO{Category: c.Name, Items: c.Items}
	}
	return out
}
