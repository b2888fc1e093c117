package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "trackly/internal/errors"
	"trackly/internal/logger"
	"trackly/internal/models"
)

// incomeService handles income-related business logic.
type incomeService struct {
	db             *gorm.DB
	savingsService SavingsServicer
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB, savingsService SavingsServicer) IncomeServicer {
	return &incomeService{
		db:             db,
		savingsService: savingsService,
	}
}

// CreateIncome creates a new income entry. For hourly income the amount is
// derived from hourly_rate * hours_worked and the submitted amount is
// ignored. Creation dispatches the savings allocation pass as a best-effort
// background task: its outcome never affects this call's result.
func (s *incomeService) CreateIncome(userID uint, in IncomeInput) (*models.Income, error) {
	if in.Source == "" || in.Category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "source and category are required")
	}

	amount := in.Amount
	if in.IsHourly {
		if in.HourlyRate == nil || in.HoursWorked == nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "hourly income requires hourly_rate and hours_worked")
		}
		if *in.HourlyRate <= 0 || *in.HoursWorked <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "hourly_rate and hours_worked must be greater than zero")
		}
		amount = *in.HourlyRate * *in.HoursWorked
	}

	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	date := in.IncomeDate
	if date.IsZero() {
		date = time.Now()
	}

	income := &models.Income{
		UserID:      userID,
		Source:      in.Source,
		Amount:      amount,
		IncomeDate:  date,
		Category:    in.Category,
		Description: in.Description,
		IsRecurring: in.IsRecurring,
		IsHourly:    in.IsHourly,
		HourlyRate:  in.HourlyRate,
		HoursWorked: in.HoursWorked,
	}

	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Fire-and-forget: savings allocation must never fail income creation.
	go func(userID uint, amount float64, date time.Time) {
		if err := s.savingsService.AllocateFromIncome(userID, amount, date); err != nil {
			logger.Get().Errorw("savings allocation after income creation failed",
				"error", err,
				"user_id", userID,
				"amount", amount,
			)
		}
	}(userID, amount, date)

	return income, nil
}

// GetUserIncome returns the user's income entries, optionally restricted to
// the month containing the given time, newest first.
func (s *incomeService) GetUserIncome(userID uint, month *time.Time) ([]models.Income, error) {
	q := s.db.Where("user_id = ?", userID)
	if month != nil {
		start, end := monthWindow(*month)
		q = q.Where("income_date >= ? AND income_date < ?", start, end)
	}

	var entries []models.Income
	if err := q.Order("income_date DESC").Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// DeleteIncome removes an income entry. The delete is idempotent and scoped
// to the owning user; deleting a missing or foreign row is a no-op.
func (s *incomeService) DeleteIncome(userID, incomeID uint) error {
	if err := s.db.Where("id = ? AND user_id = ?", incomeID, userID).Delete(&models.Income{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
