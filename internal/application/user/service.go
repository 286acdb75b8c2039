// Package user provides the application layer for user accounts and
// meal-planning preferences.
package user

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/user"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/inbound"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
	"github.com/jarrett-joe/my-meal-planner/pkg/errors"
)

// UserService implements the user and preference use cases
type UserService struct {
	userRepo outbound.UserRepository
	prefRepo outbound.PreferenceRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo outbound.UserRepository,
	prefRepo outbound.PreferenceRepository,
	logger *zap.Logger,
) inbound.UserService {
	return &UserService{
		userRepo: userRepo,
		prefRepo: prefRepo,
		logger:   logger.Named("user-service"),
	}
}

// EnsureUser upserts the account record from resolved identity claims. A
// first sighting creates the trial account with its free credit grant;
// later sightings refresh profile fields without touching billing state.
func (s *UserService) EnsureUser(ctx context.Context, cmd inbound.EnsureUserCommand) (*inbound.UserDTO, error) {
	account, err := s.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("find user", err)
	}

	if account == nil {
		account = user.NewUser(cmd.UserID, cmd.Email)
		s.logger.Info("Creating trial account",
			zap.String("user_id", cmd.UserID.String()),
		)
	}
	account.SetName(cmd.FirstName, cmd.LastName)
	if cmd.ProfileImageURL != "" {
		account.SetProfileImage(cmd.ProfileImageURL)
	}

	if err := s.userRepo.Upsert(ctx, account); err != nil {
		return nil, errors.NewDatabaseError("upsert user", err)
	}

	dto := userToDTO(account)
	return &dto, nil
}

// GetUser returns the account record.
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*inbound.UserDTO, error) {
	account, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find user", err)
	}
	if account == nil {
		return nil, errors.NewUserNotFoundError(userID.String())
	}
	dto := userToDTO(account)
	return &dto, nil
}

// GetPreferences returns the stored preference set, or the empty default
// when the user has never saved one. Reads never fail with not-found.
func (s *UserService) GetPreferences(ctx context.Context, userID uuid.UUID) (*inbound.PreferencesDTO, error) {
	prefs, err := s.prefRepo.Find(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find preferences", err)
	}
	if prefs == nil {
		prefs = user.DefaultPreferences(userID)
	}
	dto := preferencesToDTO(prefs)
	return &dto, nil
}

// SetPreferences applies a partial update on top of the stored set and
// writes the merged row back. Supplied lists replace the stored ones
// wholesale; nil lists are left as they were.
func (s *UserService) SetPreferences(ctx context.Context, cmd inbound.SetPreferencesCommand) (*inbound.PreferencesDTO, error) {
	prefs, err := s.prefRepo.Find(ctx, cmd.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("find preferences", err)
	}
	if prefs == nil {
		prefs = user.DefaultPreferences(cmd.UserID)
	}

	prefs.Apply(user.PreferencesUpdate{
		ProteinPreferences:  cmd.ProteinPreferences,
		CuisinePreferences:  cmd.CuisinePreferences,
		DietaryRestrictions: cmd.DietaryRestrictions,
	})

	if err := s.prefRepo.Upsert(ctx, prefs); err != nil {
		return nil, errors.NewDatabaseError("upsert preferences", err)
	}

	s.logger.Info("Preferences updated",
		zap.String("user_id", cmd.UserID.String()),
		zap.Int("proteins", len(prefs.ProteinPreferences)),
		zap.Int("cuisines", len(prefs.CuisinePreferences)),
		zap.Int("restrictions", len(prefs.DietaryRestrictions)),
	)

	dto := preferencesToDTO(prefs)
	return &dto, nil
}

func userToDTO(u *user.User) inbound.UserDTO {
	return inbound.UserDTO{
		ID:                 u.ID(),
		Email:              u.Email(),
		FirstName:          u.FirstName(),
		LastName:           u.LastName(),
		ProfileImageURL:    u.ProfileImageURL(),
		SubscriptionStatus: u.SubscriptionStatus(),
		SubscriptionPlan:   u.SubscriptionPlan(),
		MealCredits:        u.MealCredits(),
		TotalMealsUsed:     u.TotalMealsUsed(),
	}
}

func preferencesToDTO(p *user.Preferences) inbound.PreferencesDTO {
	proteins := p.ProteinPreferences
	if proteins == nil {
		proteins = []string{}
	}
	cuisines := p.CuisinePreferences
	if cuisines == nil {
		cuisines = []string{}
	}
	restrictions := p.DietaryRestrictions
	if restrictions == nil {
		restrictions = []string{}
	}
	return inbound.PreferencesDTO{
		UserID:              p.UserID,
		ProteinPreferences:  proteins,
		CuisinePreferences:  cuisines,
		DietaryRestrictions: restrictions,
	}
}
