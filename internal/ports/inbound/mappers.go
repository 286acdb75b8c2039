package inbound

import (
	"time"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/recipe"
)

// RecipeDTOFromDomain converts a domain recipe to its transfer shape.
func RecipeDTOFromDomain(r *recipe.Recipe) RecipeDTO {
	ingredients := r.Ingredients()
	if ingredients == nil {
		ingredients = []string{}
	}
	return RecipeDTO{
		ID:           r.ID(),
		Title:        r.Title(),
		Description:  r.Description(),
		Cuisine:      r.Cuisine(),
		Protein:      r.Protein(),
		CookingTime:  r.CookingTime(),
		Rating:       r.Rating(),
		Ingredients:  ingredients,
		Instructions: r.Instructions(),
		ImageURL:     r.ImageURL(),
		SourceURL:    r.SourceURL(),
		OwnerID:      r.OwnerID(),
		CreatedAt:    r.CreatedAt().Format(time.RFC3339),
	}
}

// RecipeDTOsFromDomain converts a slice of domain recipes.
func RecipeDTOsFromDomain(recipes []*recipe.Recipe) []RecipeDTO {
	out := make([]RecipeDTO, len(recipes))
	for i, r := range recipes {
		out[i] = RecipeDTOFromDomain(r)
	}
	return out
}
