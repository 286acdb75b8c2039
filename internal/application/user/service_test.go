package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appuser "github.com/jarrett-joe/my-meal-planner/internal/application/user"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/user"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/inbound"
	"github.com/jarrett-joe/my-meal-planner/pkg/errors"
	"github.com/jarrett-joe/my-meal-planner/test/testutils"
)

type userFixture struct {
	userRepo *testutils.MockUserRepository
	prefRepo *testutils.MockPreferenceRepository
	svc      inbound.UserService
}

func newUserFixture() *userFixture {
	f := &userFixture{
		userRepo: new(testutils.MockUserRepository),
		prefRepo: new(testutils.MockPreferenceRepository),
	}
	f.svc = appuser.NewUserService(f.userRepo, f.prefRepo, zap.NewNop())
	return f
}

func TestEnsureUser(t *testing.T) {
	t.Run("first sighting creates a trial account with credits", func(t *testing.T) {
		f := newUserFixture()
		userID := uuid.New()

		f.userRepo.On("FindByID", mock.Anything, userID).Return(nil, nil)
		f.userRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

		dto, err := f.svc.EnsureUser(context.Background(), inbound.EnsureUserCommand{
			UserID:    userID,
			Email:     "new@example.com",
			FirstName: "Sam",
			LastName:  "Park",
		})

		require.NoError(t, err)
		assert.Equal(t, user.SubscriptionTrial, dto.SubscriptionStatus)
		assert.Equal(t, 10, dto.MealCredits)
		assert.Equal(t, "Sam", dto.FirstName)
	})

	t.Run("later sightings keep billing state", func(t *testing.T) {
		f := newUserFixture()
		existing := testutils.NewUserFactory(9).SubscribedUser()

		f.userRepo.On("FindByID", mock.Anything, existing.ID()).Return(existing, nil)
		f.userRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

		dto, err := f.svc.EnsureUser(context.Background(), inbound.EnsureUserCommand{
			UserID:    existing.ID(),
			Email:     existing.Email(),
			FirstName: "Renamed",
			LastName:  "Person",
		})

		require.NoError(t, err)
		assert.Equal(t, user.SubscriptionActive, dto.SubscriptionStatus)
		assert.Equal(t, "Renamed", dto.FirstName)
	})
}

func TestGetUser(t *testing.T) {
	f := newUserFixture()
	missing := uuid.New()

	f.userRepo.On("FindByID", mock.Anything, missing).Return(nil, nil)

	_, err := f.svc.GetUser(context.Background(), missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeUserNotFound))
}

func TestGetPreferences(t *testing.T) {
	t.Run("never-saved preferences read as the empty default", func(t *testing.T) {
		f := newUserFixture()
		userID := uuid.New()

		f.prefRepo.On("Find", mock.Anything, userID).Return(nil, nil)

		dto, err := f.svc.GetPreferences(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, []string{}, dto.ProteinPreferences)
		assert.Equal(t, []string{}, dto.CuisinePreferences)
		assert.Equal(t, []string{}, dto.DietaryRestrictions)
	})

	t.Run("returns the stored set", func(t *testing.T) {
		f := newUserFixture()
		userID := uuid.New()

		f.prefRepo.On("Find", mock.Anything, userID).Return(&user.Preferences{
			UserID:             userID,
			ProteinPreferences: []string{"chicken", "salmon"},
		}, nil)

		dto, err := f.svc.GetPreferences(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, []string{"chicken", "salmon"}, dto.ProteinPreferences)
	})
}

func TestSetPreferences(t *testing.T) {
	t.Run("supplied lists replace wholesale, nil lists are untouched", func(t *testing.T) {
		f := newUserFixture()
		userID := uuid.New()

		f.prefRepo.On("Find", mock.Anything, userID).Return(&user.Preferences{
			UserID:              userID,
			ProteinPreferences:  []string{"beef"},
			CuisinePreferences:  []string{"Italian"},
			DietaryRestrictions: []string{"gluten-free"},
		}, nil)
		f.prefRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*user.Preferences")).Return(nil)

		proteins := []string{"tofu", "shrimp"}
		dto, err := f.svc.SetPreferences(context.Background(), inbound.SetPreferencesCommand{
			UserID:             userID,
			ProteinPreferences: &proteins,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"tofu", "shrimp"}, dto.ProteinPreferences)
		assert.Equal(t, []string{"Italian"}, dto.CuisinePreferences)
		assert.Equal(t, []string{"gluten-free"}, dto.DietaryRestrictions)
		f.prefRepo.AssertExpectations(t)
	})

	t.Run("an empty list clears the stored one", func(t *testing.T) {
		f := newUserFixture()
		userID := uuid.New()

		f.prefRepo.On("Find", mock.Anything, userID).Return(&user.Preferences{
			UserID:             userID,
			CuisinePreferences: []string{"Thai", "Indian"},
		}, nil)
		f.prefRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*user.Preferences")).Return(nil)

		empty := []string{}
		dto, err := f.svc.SetPreferences(context.Background(), inbound.SetPreferencesCommand{
			UserID:             userID,
			CuisinePreferences: &empty,
		})

		require.NoError(t, err)
		assert.Empty(t, dto.CuisinePreferences)
	})

	t.Run("first write starts from the default set", func(t *testing.T) {
		f := newUserFixture()
		userID := uuid.New()

		f.prefRepo.On("Find", mock.Anything, userID).Return(nil, nil)
		f.prefRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*user.Preferences")).Return(nil)

		restrictions := []string{"vegetarian"}
		dto, err := f.svc.SetPreferences(context.Background(), inbound.SetPreferencesCommand{
			UserID:              userID,
			DietaryRestrictions: &restrictions,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"vegetarian"}, dto.DietaryRestrictions)
		assert.Equal(t, []string{}, dto.ProteinPreferences)
	})
}
