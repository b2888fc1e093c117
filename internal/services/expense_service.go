package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "trackly/internal/errors"
	"trackly/internal/models"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateExpense creates a new expense entry.
func (s *expenseService) CreateExpense(userID uint, category string, amount float64, date time.Time, description, merchant string, isRecurring bool) (*models.Expense, error) {
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	if date.IsZero() {
		date = time.Now()
	}

	expense := &models.Expense{
		UserID:      userID,
		Category:    category,
		Amount:      amount,
		ExpenseDate: date,
		Description: description,
		Merchant:    merchant,
		IsRecurring: isRecurring,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// GetUserExpenses returns the user's expenses, optionally restricted to the
// month containing the given time, newest first.
func (s *expenseService) GetUserExpenses(userID uint, month *time.Time) ([]models.Expense, error) {
	q := s.db.Where("user_id = ?", userID)
	if month != nil {
		start, end := monthWindow(*month)
		q = q.Where("expense_date >= ? AND expense_date < ?", start, end)
	}

	var expenses []models.Expense
	if err := q.Order("expense_date DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// DeleteExpense removes an expense. The delete is idempotent and scoped to
// the owning user; deleting a missing or foreign row is a no-op.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).Delete(&models.Expense{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
