// Package mealplan provides the application layer for the meal calendar.
// This implements the use cases defined in the inbound ports.
package mealplan

import (
	"context"

	"go.uber.org/zap"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/mealplan"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/inbound"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
	"github.com/jarrett-joe/my-meal-planner/pkg/errors"
)

// MealPlanService implements the meal calendar use cases
type MealPlanService struct {
	calendarRepo outbound.CalendarRepository
	recipeRepo   outbound.RecipeRepository
	logger       *zap.Logger
}

// NewMealPlanService creates a new meal plan service
func NewMealPlanService(
	calendarRepo outbound.CalendarRepository,
	recipeRepo outbound.RecipeRepository,
	logger *zap.Logger,
) inbound.MealPlanService {
	return &MealPlanService{
		calendarRepo: calendarRepo,
		recipeRepo:   recipeRepo,
		logger:       logger.Named("mealplan-service"),
	}
}

// ScheduleMeal upserts the calendar entry keyed by (user, date, slot). An
// occupied slot has its recipe reference overwritten; no duplicate row is
// created and no history of the replaced value is kept.
func (s *MealPlanService) ScheduleMeal(ctx context.Context, cmd inbound.ScheduleMealCommand) (*inbound.CalendarEntryDTO, error) {
	if !cmd.Slot.IsValid() {
		return nil, errors.NewUnknownMealSlotError(string(cmd.Slot))
	}

	recipeEntity, err := s.recipeRepo.FindByID(ctx, cmd.RecipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if recipeEntity == nil {
		return nil, errors.NewRecipeNotFoundError(cmd.RecipeID.String())
	}

	entry, err := mealplan.NewEntry(cmd.UserID, cmd.Date, cmd.Slot, cmd.RecipeID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	saved, err := s.calendarRepo.Upsert(ctx, entry)
	if err != nil {
		return nil, errors.NewDatabaseError("upsert calendar entry", err)
	}

	s.logger.Info("Meal scheduled",
		zap.String("user_id", cmd.UserID.String()),
		zap.String("date", mealplan.FormatDate(saved.Date())),
		zap.String("slot", string(saved.Slot())),
		zap.String("recipe_id", cmd.RecipeID.String()),
	)

	dto := scheduledToDTO(&mealplan.ScheduledMeal{Entry: saved, Recipe: recipeEntity})
	return &dto, nil
}

// UnscheduleMeal deletes the entry at the exact (user, date, slot) key.
// Deleting a non-existent key is a no-op, not an error.
func (s *MealPlanService) UnscheduleMeal(ctx context.Context, cmd inbound.UnscheduleMealCommand) error {
	if !cmd.Slot.IsValid() {
		return errors.NewUnknownMealSlotError(string(cmd.Slot))
	}
	if cmd.Date.IsZero() {
		return errors.NewValidationError(mealplan.ErrZeroDate.Error())
	}

	if err := s.calendarRepo.Delete(ctx, cmd.UserID, mealplan.TruncateToDay(cmd.Date), cmd.Slot); err != nil {
		return errors.NewDatabaseError("delete calendar entry", err)
	}

	s.logger.Info("Meal unscheduled",
		zap.String("user_id", cmd.UserID.String()),
		zap.String("date", mealplan.FormatDate(cmd.Date)),
		zap.String("slot", string(cmd.Slot)),
	)

	return nil
}

// ListCalendar returns all entries in the inclusive [From, To] range, each
// expanded with its referenced recipe, ordered by date then slot order. An
// empty range result is a success, not an error. Callers that render a month
// view are responsible for padding the range to full weeks.
func (s *MealPlanService) ListCalendar(ctx context.Context, query inbound.ListCalendarQuery) ([]inbound.CalendarEntryDTO, error) {
	from := mealplan.TruncateToDay(query.From)
	to := mealplan.TruncateToDay(query.To)
	if from.After(to) {
		return nil, errors.NewValidationError(mealplan.ErrInvertedRange.Error())
	}

	scheduled, err := s.calendarRepo.ListRange(ctx, query.UserID, from, to)
	if err != nil {
		return nil, errors.NewDatabaseError("list calendar range", err)
	}

	dtos := make([]inbound.CalendarEntryDTO, len(scheduled))
	for i, sm := range scheduled {
		dtos[i] = scheduledToDTO(sm)
	}
	return dtos, nil
}

func scheduledToDTO(sm *mealplan.ScheduledMeal) inbound.CalendarEntryDTO {
	return inbound.CalendarEntryDTO{
		UserID:        sm.Entry.UserID(),
		ScheduledDate: mealplan.FormatDate(sm.Entry.Date()),
		MealSlot:      string(sm.Entry.Slot()),
		Recipe:        inbound.RecipeDTOFromDomain(sm.Recipe),
	}
}
