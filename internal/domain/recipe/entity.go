// Package recipe contains the core domain logic for recipe records.
// This follows Domain-Driven Design principles with rich domain models.
package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Recipe represents a stored recipe record. Recipes are created once, by AI
// suggestion or manual entry, and never mutated afterwards. Other aggregates
// (favorites, calendar entries) hold non-owning references to a recipe's ID.
type Recipe struct {
	id           uuid.UUID
	title        string
	description  string
	cuisine      string
	protein      string
	cookingTime  int // minutes
	rating       float64
	ingredients  []string
	instructions string
	imageURL     string
	sourceURL    string
	ownerID      *uuid.UUID // nil means system-generated
	createdAt    time.Time
}

// NewRecipe creates a new Recipe with validation. ownerID may be nil for
// system-generated recipes, which are never deleted by user actions.
func NewRecipe(title string, ingredients []string, ownerID *uuid.UUID) (*Recipe, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	cleaned := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if s := strings.TrimSpace(ing); s != "" {
			cleaned = append(cleaned, s)
		}
	}

	return &Recipe{
		id:          uuid.New(),
		title:       title,
		ingredients: cleaned,
		ownerID:     ownerID,
		createdAt:   time.Now().UTC(),
	}, nil
}

// Reconstitute rebuilds a Recipe from persisted state. It performs no
// validation; the store is trusted to hold records created through NewRecipe.
func Reconstitute(
	id uuid.UUID,
	title, description, cuisine, protein string,
	cookingTime int,
	rating float64,
	ingredients []string,
	instructions, imageURL, sourceURL string,
	ownerID *uuid.UUID,
	createdAt time.Time,
) *Recipe {
	return &Recipe{
		id:           id,
		title:        title,
		description:  description,
		cuisine:      cuisine,
		protein:      protein,
		cookingTime:  cookingTime,
		rating:       rating,
		ingredients:  ingredients,
		instructions: instructions,
		imageURL:     imageURL,
		sourceURL:    sourceURL,
		ownerID:      ownerID,
		createdAt:    createdAt,
	}
}

// SetDetails fills the descriptive attributes at creation time. It returns an
// error when the cooking time is negative; the rating is bounded 4.0-5.0 by
// convention only and is not enforced here.
func (r *Recipe) SetDetails(description, cuisine, protein string, cookingTime int, rating float64) error {
	if cookingTime < 0 {
		return ErrNegativeCookingTime
	}
	r.description = description
	r.cuisine = cuisine
	r.protein = protein
	r.cookingTime = cookingTime
	r.rating = rating
	return nil
}

// SetInstructions sets the free-text cooking instructions.
func (r *Recipe) SetInstructions(instructions string) {
	r.instructions = instructions
}

// SetMedia sets the optional image and source references.
func (r *Recipe) SetMedia(imageURL, sourceURL string) {
	r.imageURL = imageURL
	r.sourceURL = sourceURL
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uuid.UUID {
	return r.id
}

// Title returns the recipe's title
func (r *Recipe) Title() string {
	return r.title
}

// Description returns the recipe's description
func (r *Recipe) Description() string {
	return r.description
}

// Cuisine returns the recipe's cuisine
func (r *Recipe) Cuisine() string {
	return r.cuisine
}

// Protein returns the recipe's primary protein
func (r *Recipe) Protein() string {
	return r.protein
}

// CookingTime returns the cooking time in minutes
func (r *Recipe) CookingTime() int {
	return r.cookingTime
}

// Rating returns the recipe's rating
func (r *Recipe) Rating() float64 {
	return r.rating
}

// Ingredients returns the ordered ingredient list
func (r *Recipe) Ingredients() []string {
	return r.ingredients
}

// Instructions returns the cooking instructions
func (r *Recipe) Instructions() string {
	return r.instructions
}

// ImageURL returns the optional image reference
func (r *Recipe) ImageURL() string {
	return r.imageURL
}

// SourceURL returns the optional source URL
func (r *Recipe) SourceURL() string {
	return r.sourceURL
}

// OwnerID returns the owning user ID, nil for system-generated recipes
func (r *Recipe) OwnerID() *uuid.UUID {
	return r.ownerID
}

// CreatedAt returns the creation timestamp
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// IsSystemGenerated reports whether the recipe has no owning user
func (r *Recipe) IsSystemGenerated() bool {
	return r.ownerID == nil
}

func validateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if len(trimmed) < 3 {
		return ErrTitleTooShort
	}
	if len(trimmed) > 200 {
		return ErrTitleTooLong
	}
	return nil
}
