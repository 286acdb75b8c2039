// Package user contains the domain model for accounts, billing state and
// meal-planning preferences. Authentication and Stripe flows live outside the
// core; this entity only carries the resulting identity and quota fields.
package user

import (
	"time"

	"github.com/google/uuid"
)

// Subscription status values mirrored from the billing gateway.
const (
	SubscriptionTrial  = "trial"
	SubscriptionActive = "active"
)

// User represents an account as seen by the meal-planning core.
type User struct {
	id                   uuid.UUID
	email                string
	firstName            string
	lastName             string
	profileImageURL      string
	stripeCustomerID     string
	stripeSubscriptionID string
	subscriptionStatus   string
	subscriptionPlan     string
	mealCredits          int
	totalMealsUsed       int
	createdAt            time.Time
	updatedAt            time.Time
}

// NewUser creates a user record with the trial defaults: 10 free meal
// credits and trial subscription status.
func NewUser(id uuid.UUID, email string) *User {
	now := time.Now().UTC()
	return &User{
		id:                 id,
		email:              email,
		subscriptionStatus: SubscriptionTrial,
		subscriptionPlan:   SubscriptionTrial,
		mealCredits:        10,
		createdAt:          now,
		updatedAt:          now,
	}
}

// Reconstitute rebuilds a User from persisted state.
func Reconstitute(
	id uuid.UUID,
	email, firstName, lastName, profileImageURL string,
	stripeCustomerID, stripeSubscriptionID, subscriptionStatus, subscriptionPlan string,
	mealCredits, totalMealsUsed int,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:                   id,
		email:                email,
		firstName:            firstName,
		lastName:             lastName,
		profileImageURL:      profileImageURL,
		stripeCustomerID:     stripeCustomerID,
		stripeSubscriptionID: stripeSubscriptionID,
		subscriptionStatus:   subscriptionStatus,
		subscriptionPlan:     subscriptionPlan,
		mealCredits:          mealCredits,
		totalMealsUsed:       totalMealsUsed,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

// SetName sets the user's display names.
func (u *User) SetName(first, last string) {
	u.firstName = first
	u.lastName = last
	u.updatedAt = time.Now().UTC()
}

// SetProfileImage sets the profile image reference.
func (u *User) SetProfileImage(url string) {
	u.profileImageURL = url
	u.updatedAt = time.Now().UTC()
}

// ID returns the user's unique identifier
func (u *User) ID() uuid.UUID {
	return u.id
}

// Email returns the user's email address
func (u *User) Email() string {
	return u.email
}

// FirstName returns the user's first name
func (u *User) FirstName() string {
	return u.firstName
}

// LastName returns the user's last name
func (u *User) LastName() string {
	return u.lastName
}

// ProfileImageURL returns the profile image reference
func (u *User) ProfileImageURL() string {
	return u.profileImageURL
}

// StripeCustomerID returns the billing customer reference
func (u *User) StripeCustomerID() string {
	return u.stripeCustomerID
}

// StripeSubscriptionID returns the billing subscription reference
func (u *User) StripeSubscriptionID() string {
	return u.stripeSubscriptionID
}

// SubscriptionStatus returns the subscription status
func (u *User) SubscriptionStatus() string {
	return u.subscriptionStatus
}

// SubscriptionPlan returns the subscription plan
func (u *User) SubscriptionPlan() string {
	return u.subscriptionPlan
}

// MealCredits returns the remaining meal-generation credits
func (u *User) MealCredits() int {
	return u.mealCredits
}

// TotalMealsUsed returns the lifetime count of generated meals
func (u *User) TotalMealsUsed() int {
	return u.totalMealsUsed
}

// CreatedAt returns the creation timestamp
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns the last update timestamp
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// CanGenerateMeals reports whether the user may request AI suggestions:
// an active subscription, or remaining trial credits.
func (u *User) CanGenerateMeals() bool {
	return u.subscriptionStatus == SubscriptionActive || u.mealCredits > 0
}

// CreditsToConsume returns how many credits a generation of n meals should
// deduct. Active subscribers are not metered; trial users are capped at
// their remaining balance (partial-success contract).
func (u *User) CreditsToConsume(n int) int {
	if u.subscriptionStatus == SubscriptionActive {
		return 0
	}
	if n > u.mealCredits {
		return u.mealCredits
	}
	return n
}
