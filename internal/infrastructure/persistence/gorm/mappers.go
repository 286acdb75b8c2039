// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"github.com/jarrett-joe/my-meal-planner/internal/domain/grocery"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/mealplan"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/recipe"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/user"
)

// UserToModel converts a domain user to a GORM model
func UserToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:                   u.ID(),
		Email:                u.Email(),
		FirstName:            u.FirstName(),
		LastName:             u.LastName(),
		ProfileImageURL:      u.ProfileImageURL(),
		StripeCustomerID:     u.StripeCustomerID(),
		StripeSubscriptionID: u.StripeSubscriptionID(),
		SubscriptionStatus:   u.SubscriptionStatus(),
		SubscriptionPlan:     u.SubscriptionPlan(),
		MealCredits:          u.MealCredits(),
		TotalMealsUsed:       u.TotalMealsUsed(),
		CreatedAt:            u.CreatedAt(),
		UpdatedAt:            u.UpdatedAt(),
	}
}

// ModelToUser converts a GORM model to a domain user
func ModelToUser(m *UserModel) *user.User {
	return user.Reconstitute(
		m.ID,
		m.Email, m.FirstName, m.LastName, m.ProfileImageURL,
		m.StripeCustomerID, m.StripeSubscriptionID, m.SubscriptionStatus, m.SubscriptionPlan,
		m.MealCredits, m.TotalMealsUsed,
		m.CreatedAt, m.UpdatedAt,
	)
}

// PreferencesToModel converts domain preferences to a GORM model
func PreferencesToModel(p *user.Preferences) *PreferenceModel {
	return &PreferenceModel{
		UserID:              p.UserID,
		ProteinPreferences:  StringSlice(p.ProteinPreferences),
		CuisinePreferences:  StringSlice(p.CuisinePreferences),
		DietaryRestrictions: StringSlice(p.DietaryRestrictions),
	}
}

// ModelToPreferences converts a GORM model to domain preferences
func ModelToPreferences(m *PreferenceModel) *user.Preferences {
	return &user.Preferences{
		UserID:              m.UserID,
		ProteinPreferences:  []string(m.ProteinPreferences),
		CuisinePreferences:  []string(m.CuisinePreferences),
		DietaryRestrictions: []string(m.DietaryRestrictions),
	}
}

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:           r.ID(),
		Title:        r.Title(),
		Description:  r.Description(),
		Cuisine:      r.Cuisine(),
		Protein:      r.Protein(),
		CookingTime:  r.CookingTime(),
		Rating:       r.Rating(),
		Ingredients:  StringSlice(r.Ingredients()),
		Instructions: r.Instructions(),
		ImageURL:     r.ImageURL(),
		SourceURL:    r.SourceURL(),
		OwnerID:      r.OwnerID(),
		CreatedAt:    r.CreatedAt(),
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	return recipe.Reconstitute(
		m.ID,
		m.Title, m.Description, m.Cuisine, m.Protein,
		m.CookingTime,
		m.Rating,
		[]string(m.Ingredients),
		m.Instructions, m.ImageURL, m.SourceURL,
		m.OwnerID,
		m.CreatedAt,
	)
}

// EntryToModel converts a domain calendar entry to a GORM model
func EntryToModel(e *mealplan.Entry) *CalendarEntryModel {
	return &CalendarEntryModel{
		UserID:        e.UserID(),
		ScheduledDate: e.Date(),
		MealSlot:      string(e.Slot()),
		RecipeID:      e.RecipeID(),
		CreatedAt:     e.CreatedAt(),
	}
}

// ModelToEntry converts a GORM model to a domain calendar entry
func ModelToEntry(m *CalendarEntryModel) *mealplan.Entry {
	return mealplan.ReconstituteEntry(
		m.UserID,
		m.ScheduledDate,
		mealplan.Slot(m.MealSlot),
		m.RecipeID,
		m.CreatedAt,
	)
}

// GroceryListToModel converts a domain grocery list to a GORM model
func GroceryListToModel(l *grocery.List) *GroceryListModel {
	return &GroceryListModel{
		UserID:     l.UserID(),
		WeekStart:  l.WeekStart(),
		Categories: CategoryList(l.Categories()),
		CreatedAt:  l.CreatedAt(),
	}
}

// ModelToGroceryList converts a GORM model to a domain grocery list
func ModelToGroceryList(m *GroceryListModel) *grocery.List {
	return grocery.Reconstitute(
		m.UserID,
		m.WeekStart,
		[]grocery.Category(m.Categories),
		m.CreatedAt,
	)
}
