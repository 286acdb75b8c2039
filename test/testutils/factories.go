package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/recipe"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/user"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
)

var cuisines = []string{"Italian", "Mexican", "Thai", "Indian", "Japanese", "Greek"}
var proteins = []string{"chicken", "beef", "salmon", "tofu", "shrimp", "pork"}

// RecipeFactory creates test recipes with seeded fake data.
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a factory with a seeded faker so tests stay
// reproducible.
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{faker: gofakeit.New(seed)}
}

// Recipe builds a valid system-generated recipe.
func (f *RecipeFactory) Recipe() *recipe.Recipe {
	r, err := recipe.NewRecipe(f.faker.Dinner(), f.ingredients(), nil)
	if err != nil {
		panic(err)
	}
	if err := r.SetDetails(
		f.faker.Sentence(8),
		f.faker.RandomString(cuisines),
		f.faker.RandomString(proteins),
		f.faker.Number(5, 180),
		4.0+f.faker.Float64Range(0, 1),
	); err != nil {
		panic(err)
	}
	r.SetInstructions(f.faker.Paragraph(1, 3, 8, " "))
	return r
}

// OwnedRecipe builds a valid recipe owned by the given user.
func (f *RecipeFactory) OwnedRecipe(ownerID uuid.UUID) *recipe.Recipe {
	r, err := recipe.NewRecipe(f.faker.Dinner(), f.ingredients(), &ownerID)
	if err != nil {
		panic(err)
	}
	return r
}

// Suggestion builds a normalized meal suggestion.
func (f *RecipeFactory) Suggestion() outbound.MealSuggestion {
	return outbound.MealSuggestion{
		Title:        f.faker.Dinner(),
		Description:  f.faker.Sentence(8),
		Cuisine:      f.faker.RandomString(cuisines),
		Protein:      f.faker.RandomString(proteins),
		CookingTime:  f.faker.Number(5, 180),
		Ingredients:  f.ingredients(),
		Instructions: f.faker.Paragraph(1, 3, 8, " "),
		Rating:       4.0 + f.faker.Float64Range(0, 1),
	}
}

func (f *RecipeFactory) ingredients() []string {
	n := f.faker.Number(3, 8)
	out := make([]string, n)
	for i := range out {
		out[i] = f.faker.Vegetable()
	}
	return out
}

// UserFactory creates test users with seeded fake data.
type UserFactory struct {
	faker *gofakeit.Faker
}

// NewUserFactory creates a factory with a seeded faker.
func NewUserFactory(seed int64) *UserFactory {
	return &UserFactory{faker: gofakeit.New(seed)}
}

// TrialUser builds a fresh trial account with the default credit grant.
func (f *UserFactory) TrialUser() *user.User {
	u := user.NewUser(uuid.New(), f.faker.Email())
	u.SetName(f.faker.FirstName(), f.faker.LastName())
	return u
}

// SubscribedUser builds an account with an active subscription.
func (f *UserFactory) SubscribedUser() *user.User {
	return user.Reconstitute(
		uuid.New(),
		f.faker.Email(), f.faker.FirstName(), f.faker.LastName(), "",
		"cus_"+f.faker.LetterN(14), "sub_"+f.faker.LetterN(14),
		user.SubscriptionActive, "monthly",
		0, f.faker.Number(0, 50),
		time.Now().UTC().Add(-30*24*time.Hour), time.Now().UTC(),
	)
}

// ExhaustedTrialUser builds a trial account with zero remaining credits.
func (f *UserFactory) ExhaustedTrialUser() *user.User {
	return user.Reconstitute(
		uuid.New(),
		f.faker.Email(), f.faker.FirstName(), f.faker.LastName(), "",
		"", "",
		user.SubscriptionTrial, user.SubscriptionTrial,
		0, 10,
		time.Now().UTC().Add(-7*24*time.Hour), time.Now().UTC(),
	)
}
