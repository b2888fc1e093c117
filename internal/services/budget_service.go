package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "trackly/internal/errors"
	"trackly/internal/models"
)

// nearLimitThreshold is the percentage at which a budget is flagged as
// approaching its limit.
const nearLimitThreshold = 80.0

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates a new monthly budget for a category. At most one
// budget per category may be active in any month, so creation fails when the
// new validity window overlaps an existing budget for the same category.
func (s *budgetService) CreateBudget(userID uint, category string, monthlyLimit float64, startDate time.Time, endDate *time.Time) (*models.Budget, error) {
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if monthlyLimit <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly_limit must be greater than zero")
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date cannot be before start_date")
	}

	overlap := s.db.Model(&models.Budget{}).
		Where("user_id = ? AND category = ?", userID, category).
		Where("end_date IS NULL OR end_date >= ?", startDate)
	if endDate != nil {
		overlap = overlap.Where("start_date <= ?", *endDate)
	}

	var count int64
	if err := overlap.Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudget
	}

	budget := &models.Budget{
		UserID:       userID,
		Category:     category,
		MonthlyLimit: monthlyLimit,
		StartDate:    startDate,
		EndDate:      endDate,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// GetUserBudgets returns the budgets active in the month containing the
// given time; a nil month means the current month.
func (s *budgetService) GetUserBudgets(userID uint, month *time.Time) ([]models.Budget, error) {
	at := time.Now()
	if month != nil {
		at = *month
	}
	start, end := monthWindow(at)

	var budgets []models.Budget
	err := s.db.
		Where("user_id = ?", userID).
		Where("start_date < ?", end).
		Where("end_date IS NULL OR end_date >= ?", start).
		Order("category ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudgetByID returns a budget by ID if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// GetBudgetStatus computes spend status for every budget active in the month
// containing the given time. This is a pure read: nothing is persisted and
// the figures are recomputed on every call.
func (s *budgetService) GetBudgetStatus(userID uint, month time.Time) ([]BudgetStatus, error) {
	budgets, err := s.GetUserBudgets(userID, &month)
	if err != nil {
		return nil, err
	}

	start, end := monthWindow(month)
	statuses := make([]BudgetStatus, 0, len(budgets))

	for _, budget := range budgets {
		var spent float64
		err := s.db.Model(&models.Expense{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("user_id = ? AND category = ? AND expense_date >= ? AND expense_date < ?",
				userID, budget.Category, start, end).
			Scan(&spent).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var percentage float64
		if budget.MonthlyLimit > 0 {
			percentage = spent / budget.MonthlyLimit * 100
			if percentage > 100 {
				percentage = 100
			}
		}

		isOver := spent > budget.MonthlyLimit
		statuses = append(statuses, BudgetStatus{
			Budget:       budget,
			Spent:        spent,
			Remaining:    budget.MonthlyLimit - spent,
			Percentage:   percentage,
			IsOverBudget: isOver,
			IsNearLimit:  !isOver && percentage >= nearLimitThreshold && percentage < 100,
		})
	}

	return statuses, nil
}

// DeleteBudget removes a budget. The delete is idempotent and scoped to the
// owning user; deleting a missing or foreign row is a no-op.
func (s *budgetService) DeleteBudget(userID, budgetID uint) error {
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).Delete(&models.Budget{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
