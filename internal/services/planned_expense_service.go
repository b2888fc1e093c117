package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "trackly/internal/errors"
	"trackly/internal/logger"
	"trackly/internal/models"
)

// plannedExpenseService handles planned-expense business logic and maintains
// the invariant that no stored row is dated on or before today.
type plannedExpenseService struct {
	db *gorm.DB
}

// NewPlannedExpenseService creates a new PlannedExpenseServicer.
func NewPlannedExpenseService(db *gorm.DB) PlannedExpenseServicer {
	return &plannedExpenseService{db: db}
}

// CreatePlannedExpense stores a future obligation. A submission whose planned
// date is already due (on or before today) skips the planned-expense table
// and is inserted directly as an expense, with the title as merchant.
func (s *plannedExpenseService) CreatePlannedExpense(userID uint, in PlannedExpenseInput) (*models.PlannedExpense, *models.Expense, error) {
	if in.Title == "" || in.Category == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title and category are required")
	}
	if in.Amount <= 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if in.PlannedDate.IsZero() {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "planned_date is required")
	}

	if in.PlannedDate.Before(startOfTomorrow(time.Now())) {
		expense := &models.Expense{
			UserID:      userID,
			Category:    in.Category,
			Amount:      in.Amount,
			ExpenseDate: in.PlannedDate,
			Description: in.Description,
			Merchant:    in.Title,
		}
		if err := s.db.Create(expense).Error; err != nil {
			return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil, expense, nil
	}

	planned := &models.PlannedExpense{
		UserID:      userID,
		Title:       in.Title,
		Category:    in.Category,
		Amount:      in.Amount,
		PlannedDate: in.PlannedDate,
		Description: in.Description,
	}
	if err := s.db.Create(planned).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return planned, nil, nil
}

// ListPlannedExpenses rolls forward all due entries, then returns the
// remaining strictly-future rows ordered by planned date.
func (s *plannedExpenseService) ListPlannedExpenses(userID uint) ([]models.PlannedExpense, error) {
	s.rollForwardDue(userID)

	var planned []models.PlannedExpense
	err := s.db.
		Where("user_id = ? AND planned_date >= ?", userID, startOfTomorrow(time.Now())).
		Order("planned_date ASC").
		Find(&planned).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return planned, nil
}

// rollForwardDue converts every planned expense dated on or before today into
// an expense record and removes the planned row, one transaction per record.
// A failing record is logged and skipped so the rest still convert. The
// resulting expense keeps the planned expense's creation timestamp so the
// audit trail is continuous.
//
// Two overlapping reads can both observe the same due row before either
// deletes it; the possible duplicate conversion is an accepted single-user
// limitation rather than something this routine locks against.
func (s *plannedExpenseService) rollForwardDue(userID uint) {
	var due []models.PlannedExpense
	err := s.db.
		Where("user_id = ? AND planned_date < ?", userID, startOfTomorrow(time.Now())).
		Find(&due).Error
	if err != nil {
		logger.Get().Errorw("failed to fetch due planned expenses", "error", err, "user_id", userID)
		return
	}

	for _, pe := range due {
		pe := pe
		err := s.db.Transaction(func(tx *gorm.DB) error {
			expense := &models.Expense{
				UserID:      pe.UserID,
				Category:    pe.Category,
				Amount:      pe.Amount,
				ExpenseDate: pe.PlannedDate,
				Description: pe.Description,
				Merchant:    pe.Title,
			}
			expense.CreatedAt = pe.CreatedAt
			if err := tx.Create(expense).Error; err != nil {
				return err
			}
			return tx.Delete(&pe).Error
		})
		if err != nil {
			logger.Get().Errorw("failed to roll forward planned expense",
				"error", err,
				"user_id", userID,
				"planned_expense_id", pe.ID,
				"title", pe.Title,
			)
		}
	}
}

// DeletePlannedExpense removes a planned expense. The delete is idempotent
// and scoped to the owning user; deleting a missing or foreign row is a no-op.
func (s *plannedExpenseService) DeletePlannedExpense(userID, plannedExpenseID uint) error {
	if err := s.db.Where("id = ? AND user_id = ?", plannedExpenseID, userID).Delete(&models.PlannedExpense{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
