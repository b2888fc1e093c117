package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "trackly/internal/errors"
	"trackly/internal/logger"
	"trackly/internal/models"
)

// savingsService handles savings-goal business logic, including the
// automatic allocation pass that runs on every new income event.
type savingsService struct {
	db *gorm.DB
}

// NewSavingsService creates a new SavingsServicer.
func NewSavingsService(db *gorm.DB) SavingsServicer {
	return &savingsService{db: db}
}

// CreateGoal creates a new savings goal.
func (s *savingsService) CreateGoal(userID uint, in GoalInput) (*models.SavingsGoal, error) {
	if in.GoalName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal_name is required")
	}
	if in.TargetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target_amount must be greater than zero")
	}
	if in.CurrentAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current_amount cannot be negative")
	}
	if in.AllocationType == models.AllocationTypePercentage && (in.AllocationValue < 0 || in.AllocationValue > 100) {
		return nil, apperrors.ErrInvalidAllocation
	}
	if in.AllocationValue < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "allocation_value cannot be negative")
	}

	goal := &models.SavingsGoal{
		UserID:          userID,
		GoalName:        in.GoalName,
		TargetAmount:    in.TargetAmount,
		CurrentAmount:   in.CurrentAmount,
		TargetDate:      in.TargetDate,
		Description:     in.Description,
		AllocationType:  in.AllocationType,
		AllocationValue: in.AllocationValue,
		Frequency:       in.Frequency,
		Color:           in.Color,
		Priority:        in.Priority,
		IsActive:        true,
		IsCompleted:     in.CurrentAmount >= in.TargetAmount,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// GetGoalByID returns a goal by ID if it belongs to the user.
func (s *savingsService) GetGoalByID(userID, goalID uint) (*models.SavingsGoal, error) {
	var goal models.SavingsGoal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// ListGoals returns every goal with its derived figures plus the aggregate
// summary, ordered by priority descending. The expected-allocation figure
// for monthly percentage goals is projected from the current month's income.
func (s *savingsService) ListGoals(userID uint) (*GoalList, error) {
	var goals []models.SavingsGoal
	err := s.db.
		Where("user_id = ?", userID).
		Order("priority DESC, created_at ASC").
		Find(&goals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	monthlyIncome, err := s.currentMonthIncome(userID)
	if err != nil {
		return nil, err
	}

	list := &GoalList{Goals: make([]GoalView, 0, len(goals))}
	for _, goal := range goals {
		allocation := calculatedAllocation(goal, monthlyIncome)

		var progress float64
		if goal.TargetAmount > 0 {
			progress = goal.CurrentAmount / goal.TargetAmount * 100
			if progress > 100 {
				progress = 100
			}
		}

		remaining := goal.TargetAmount - goal.CurrentAmount
		if remaining < 0 {
			remaining = 0
		}

		list.Goals = append(list.Goals, GoalView{
			SavingsGoal:          goal,
			CalculatedAllocation: allocation,
			Progress:             progress,
			Remaining:            remaining,
		})

		if goal.IsActive {
			list.Summary.ActiveGoals++
			switch goal.Frequency {
			case models.GoalFrequencyMonthly:
				list.Summary.TotalMonthlyAllocation += allocation
			case models.GoalFrequencyOverall:
				list.Summary.TotalOverallAllocation += allocation
			}
		}
		if goal.IsCompleted {
			list.Summary.CompletedGoals++
		}
		// Paused and completed goals still count toward money set aside.
		list.Summary.TotalCurrentlySaved += goal.CurrentAmount
		list.Summary.TotalTargetAmount += goal.TargetAmount
	}

	list.Summary.TotalAllocation = list.Summary.TotalMonthlyAllocation + list.Summary.TotalOverallAllocation
	if list.Summary.TotalTargetAmount > 0 {
		pct := list.Summary.TotalCurrentlySaved / list.Summary.TotalTargetAmount * 100
		if pct > 100 {
			pct = 100
		}
		list.Summary.OverallProgressPercentage = pct
	}

	return list, nil
}

// calculatedAllocation is the expected next contribution shown for a goal.
// For overall goals it is the amount still needed, not an amount that any
// automatic pass will add; only monthly goals are funded automatically.
func calculatedAllocation(goal models.SavingsGoal, monthlyIncome float64) float64 {
	if !goal.IsActive {
		return 0
	}

	switch goal.Frequency {
	case models.GoalFrequencyMonthly:
		if goal.AllocationType == models.AllocationTypePercentage {
			return monthlyIncome * goal.AllocationValue / 100
		}
		return goal.AllocationValue
	case models.GoalFrequencyOverall:
		remaining := goal.TargetAmount - goal.CurrentAmount
		if remaining < 0 {
			remaining = 0
		}
		return remaining
	}
	return 0
}

// currentMonthIncome sums the user's income for the month containing now.
func (s *savingsService) currentMonthIncome(userID uint) (float64, error) {
	start, end := monthWindow(time.Now())

	var total float64
	err := s.db.Model(&models.Income{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND income_date >= ? AND income_date < ?", userID, start, end).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// AllocateFromIncome applies automatic contributions for a new income event.
// Every active monthly goal receives its full contribution (percentage of
// the income amount, or its fixed value); overall goals are skipped — they
// are funded manually. Goals are visited in priority order, which currently
// has no effect on amounts. A failing goal update is logged and skipped so
// the rest of the batch still applies; income creation never fails because
// of this pass.
func (s *savingsService) AllocateFromIncome(userID uint, incomeAmount float64, incomeDate time.Time) error {
	var goals []models.SavingsGoal
	err := s.db.
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("priority DESC").
		Find(&goals).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, goal := range goals {
		if goal.Frequency != models.GoalFrequencyMonthly {
			continue
		}

		var contribution float64
		switch goal.AllocationType {
		case models.AllocationTypePercentage:
			contribution = incomeAmount * goal.AllocationValue / 100
		case models.AllocationTypeFixed:
			contribution = goal.AllocationValue
		}
		if contribution <= 0 {
			continue
		}

		if err := s.applyContribution(&goal, contribution); err != nil {
			logger.Get().Errorw("failed to apply savings contribution",
				"error", err,
				"user_id", userID,
				"goal_id", goal.ID,
				"goal_name", goal.GoalName,
				"contribution", contribution,
				"income_date", incomeDate,
			)
			continue
		}
	}

	return nil
}

// applyContribution adds amount to the goal's current total in a single
// update, latching is_completed once the target is reached. The latch is
// never cleared here even if a later edit drops the total below target.
func (s *savingsService) applyContribution(goal *models.SavingsGoal, amount float64) error {
	newAmount := goal.CurrentAmount + amount
	updates := map[string]interface{}{
		"current_amount": newAmount,
	}
	if !goal.IsCompleted && newAmount >= goal.TargetAmount {
		updates["is_completed"] = true
	}

	if err := s.db.Model(goal).Updates(updates).Error; err != nil {
		return err
	}
	return nil
}

// UpdateGoal applies a partial update to a goal's mutable fields. Direct
// edits to current_amount or target_amount can complete the goal; they never
// un-complete it.
func (s *savingsService) UpdateGoal(userID, goalID uint, in GoalUpdate) (*models.SavingsGoal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	allocationType := goal.AllocationType
	if in.AllocationType != nil {
		allocationType = *in.AllocationType
	}
	allocationValue := goal.AllocationValue
	if in.AllocationValue != nil {
		allocationValue = *in.AllocationValue
	}
	if allocationType == models.AllocationTypePercentage && (allocationValue < 0 || allocationValue > 100) {
		return nil, apperrors.ErrInvalidAllocation
	}
	if allocationValue < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "allocation_value cannot be negative")
	}

	updates := make(map[string]interface{})
	if in.GoalName != nil {
		if *in.GoalName == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal_name cannot be empty")
		}
		updates["goal_name"] = *in.GoalName
	}
	if in.TargetAmount != nil {
		if *in.TargetAmount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target_amount must be greater than zero")
		}
		updates["target_amount"] = *in.TargetAmount
	}
	if in.CurrentAmount != nil {
		if *in.CurrentAmount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current_amount cannot be negative")
		}
		updates["current_amount"] = *in.CurrentAmount
	}
	if in.TargetDate != nil {
		updates["target_date"] = in.TargetDate
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.AllocationType != nil {
		updates["allocation_type"] = *in.AllocationType
	}
	if in.AllocationValue != nil {
		updates["allocation_value"] = *in.AllocationValue
	}
	if in.Frequency != nil {
		updates["frequency"] = *in.Frequency
	}
	if in.Color != nil {
		updates["color"] = *in.Color
	}
	if in.Priority != nil {
		updates["priority"] = *in.Priority
	}

	// Completion latches on the post-edit amounts but never unlatches.
	newCurrent := goal.CurrentAmount
	if in.CurrentAmount != nil {
		newCurrent = *in.CurrentAmount
	}
	newTarget := goal.TargetAmount
	if in.TargetAmount != nil {
		newTarget = *in.TargetAmount
	}
	if !goal.IsCompleted && newCurrent >= newTarget {
		updates["is_completed"] = true
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetGoalByID(userID, goalID)
}

// ToggleGoal flips a goal between active and paused.
func (s *savingsService) ToggleGoal(userID, goalID uint) (*models.SavingsGoal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(goal).Update("is_active", !goal.IsActive).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetGoalByID(userID, goalID)
}

// Contribute adds a manual contribution to a goal, with the same completion
// latch as automatic allocation.
func (s *savingsService) Contribute(userID, goalID uint, amount float64) (*models.SavingsGoal, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidContribution
	}

	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if err := s.applyContribution(goal, amount); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetGoalByID(userID, goalID)
}

// DeleteGoal removes a goal. The delete is idempotent and scoped to the
// owning user; deleting a missing or foreign row is a no-op.
func (s *savingsService) DeleteGoal(userID, goalID uint) error {
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.SavingsGoal{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// TotalCurrentlySaved sums current_amount across all of the user's goals,
// active or not.
func (s *savingsService) TotalCurrentlySaved(userID uint) (float64, error) {
	var total float64
	err := s.db.Model(&models.SavingsGoal{}).
		Select("COALESCE(SUM(current_amount), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}
