package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "trackly/internal/errors"
	"trackly/internal/models"
)

// summaryService computes the financial summary views. All methods are pure
// reads over the ledger tables; nothing is persisted.
type summaryService struct {
	db *gorm.DB
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB) SummaryServicer {
	return &summaryService{db: db}
}

// GetSummary computes the monthly and lifetime balance figures for the month
// containing the given time; a nil month means the current month.
//
// The planned-expense total only counts strictly future rows: entries dated
// today or earlier are the roll-forward's responsibility and will appear in
// the expense total instead, so the two sums never double-count.
func (s *summaryService) GetSummary(userID uint, month *time.Time) (*Summary, error) {
	at := time.Now()
	if month != nil {
		at = *month
	}
	start, end := monthWindow(at)

	summary := &Summary{}

	var err error
	if summary.MonthlyIncome, err = s.sumIncome(userID, &start, &end); err != nil {
		return nil, err
	}
	if summary.MonthlyExpenses, err = s.sumExpenses(userID, &start, &end); err != nil {
		return nil, err
	}
	summary.MonthlyBalance = summary.MonthlyIncome - summary.MonthlyExpenses

	totalIncome, err := s.sumIncome(userID, nil, nil)
	if err != nil {
		return nil, err
	}
	totalExpenses, err := s.sumExpenses(userID, nil, nil)
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.PlannedExpense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND planned_date >= ?", userID, startOfTomorrow(time.Now())).
		Scan(&summary.TotalPlannedExpenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary.OverallBalance = totalIncome - totalExpenses - summary.TotalPlannedExpenses

	summary.CategoryExpenses, err = s.categoryExpenses(userID, start, end)
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// sumIncome totals income rows, optionally restricted to [start, end).
func (s *summaryService) sumIncome(userID uint, start, end *time.Time) (float64, error) {
	q := s.db.Model(&models.Income{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userID)
	if start != nil && end != nil {
		q = q.Where("income_date >= ? AND income_date < ?", *start, *end)
	}

	var total float64
	if err := q.Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// sumExpenses totals expense rows, optionally restricted to [start, end).
func (s *summaryService) sumExpenses(userID uint, start, end *time.Time) (float64, error) {
	q := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userID)
	if start != nil && end != nil {
		q = q.Where("expense_date >= ? AND expense_date < ?", *start, *end)
	}

	var total float64
	if err := q.Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// categoryExpenses returns per-category expense totals for [start, end),
// sorted descending by total.
func (s *summaryService) categoryExpenses(userID uint, start, end time.Time) ([]CategoryExpense, error) {
	var results []CategoryExpense
	err := s.db.Model(&models.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND expense_date >= ? AND expense_date < ?", userID, start, end).
		Group("category").
		Order("total DESC").
		Scan(&results).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if results == nil {
		results = []CategoryExpense{}
	}
	return results, nil
}
