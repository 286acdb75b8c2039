// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/grocery"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID                   uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email                string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName            string    `gorm:"type:varchar(100)"`
	LastName             string    `gorm:"type:varchar(100)"`
	ProfileImageURL      string    `gorm:"type:text"`
	StripeCustomerID     string    `gorm:"type:varchar(255)"`
	StripeSubscriptionID string    `gorm:"type:varchar(255)"`
	SubscriptionStatus   string    `gorm:"type:varchar(50);default:'trial'"`
	SubscriptionPlan     string    `gorm:"type:varchar(50);default:'trial'"`
	MealCredits          int       `gorm:"default:10"`
	TotalMealsUsed       int       `gorm:"default:0"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// PreferenceModel represents the GORM model for user preferences.
// Exactly one row exists per user.
type PreferenceModel struct {
	UserID              uuid.UUID   `gorm:"type:char(36);primaryKey"`
	ProteinPreferences  StringSlice `gorm:"type:json"`
	CuisinePreferences  StringSlice `gorm:"type:json"`
	DietaryRestrictions StringSlice `gorm:"type:json"`
	UpdatedAt           time.Time
}

// TableName returns the table name for PreferenceModel
func (PreferenceModel) TableName() string {
	return "user_preferences"
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID           uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Title        string      `gorm:"type:varchar(255);not null;index"`
	Description  string      `gorm:"type:text"`
	Cuisine      string      `gorm:"type:varchar(50);index"`
	Protein      string      `gorm:"type:varchar(50);index"`
	CookingTime  int         `gorm:"column:cooking_time_minutes;default:0"`
	Rating       float64     `gorm:"default:0;index"`
	Ingredients  StringSlice `gorm:"type:json"`
	Instructions string      `gorm:"type:text"`
	ImageURL     string      `gorm:"type:text"`
	SourceURL    string      `gorm:"type:text"`
	OwnerID      *uuid.UUID  `gorm:"type:char(36);index"` // NULL means system-generated
	CreatedAt    time.Time   `gorm:"index"`
}

// TableName returns the table name for RecipeModel
func (RecipeModel) TableName() string {
	return "recipes"
}

// FavoriteModel represents the GORM model for the favorites ledger.
// The composite primary key makes a duplicate add impossible at the
// storage level.
type FavoriteModel struct {
	UserID    uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID  uuid.UUID `gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	Recipe RecipeModel `gorm:"foreignKey:RecipeID"`
}

// TableName returns the table name for FavoriteModel
func (FavoriteModel) TableName() string {
	return "user_favorites"
}

// CalendarEntryModel represents the GORM model for scheduled meals. The
// unique index over (user, scheduled date, meal slot) backs the atomic
// insert-or-replace that scheduling relies on.
type CalendarEntryModel struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	UserID        uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_calendar_user_date_slot"`
	ScheduledDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_calendar_user_date_slot;index"`
	MealSlot      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_calendar_user_date_slot"`
	RecipeID      uuid.UUID `gorm:"type:char(36);not null"`
	CreatedAt     time.Time

	Recipe RecipeModel `gorm:"foreignKey:RecipeID"`
}

// TableName returns the table name for CalendarEntryModel
func (CalendarEntryModel) TableName() string {
	return "meal_calendar"
}

// GroceryListModel represents the GORM model for generated grocery lists.
// The unique index over (user, week start) backs full-replacement upserts.
type GroceryListModel struct {
	ID         uint         `gorm:"primaryKey;autoIncrement"`
	UserID     uuid.UUID    `gorm:"type:char(36);not null;uniqueIndex:idx_grocery_user_week"`
	WeekStart  time.Time    `gorm:"type:date;not null;uniqueIndex:idx_grocery_user_week"`
	Categories CategoryList `gorm:"type:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GroceryListModel
func (GroceryListModel) TableName() string {
	return "grocery_lists"
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// CategoryList custom type for handling grocery categories in JSON
type CategoryList []grocery.Category

// Scan implements the sql.Scanner interface
func (c *CategoryList) Scan(value interface{}) error {
	if value == nil {
		*c = CategoryList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("cannot scan %T into CategoryList", value)
	}
}

// Value implements the driver.Valuer interface
func (c CategoryList) Value() (driver.Value, error) {
	if len(c) == 0 {
		return "[]", nil
	}
	return json.Marshal(c)
}

// AllModels returns every model for schema migration
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&PreferenceModel{},
		&RecipeModel{},
		&FavoriteModel{},
		&CalendarEntryModel{},
		&GroceryListModel{},
	}
}
