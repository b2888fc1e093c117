package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"trackly/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestIncome creates an income entry of the given amount dated at t0.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID uint, amount float64, date time.Time) *models.Income {
	t.Helper()

	income := &models.Income{
		UserID:     userID,
		Source:     fmt.Sprintf("Test Source %d", nextID()),
		Amount:     amount,
		IncomeDate: date,
		Category:   "salary",
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}

// CreateTestExpense creates an expense in the given category.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, category string, amount float64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:      userID,
		Category:    category,
		Amount:      amount,
		ExpenseDate: date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestBudget creates an open-ended budget for the given category.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint, category string, limit float64, startDate time.Time) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:       userID,
		Category:     category,
		MonthlyLimit: limit,
		StartDate:    startDate,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestPlannedExpense creates a planned expense due on the given date.
func CreateTestPlannedExpense(t *testing.T, db *gorm.DB, userID uint, title string, amount float64, plannedDate time.Time) *models.PlannedExpense {
	t.Helper()

	pe := &models.PlannedExpense{
		UserID:      userID,
		Title:       title,
		Category:    "bills",
		Amount:      amount,
		PlannedDate: plannedDate,
	}
	if err := db.Create(pe).Error; err != nil {
		t.Fatalf("failed to create test planned expense: %v", err)
	}
	return pe
}

// CreateTestGoal creates an active monthly savings goal with the given
// allocation settings.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint, allocType models.AllocationType, allocValue, target float64) *models.SavingsGoal {
	t.Helper()

	goal := &models.SavingsGoal{
		UserID:          userID,
		GoalName:        fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:    target,
		AllocationType:  allocType,
		AllocationValue: allocValue,
		Frequency:       models.GoalFrequencyMonthly,
		IsActive:        true,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestApplication creates a job application in the given status.
func CreateTestApplication(t *testing.T, db *gorm.DB, userID uint, status models.ApplicationStatus) *models.JobApplication {
	t.Helper()

	n := nextID()
	app := &models.JobApplication{
		UserID:      userID,
		Company:     fmt.Sprintf("Test Company %d", n),
		Position:    fmt.Sprintf("Test Position %d", n),
		Status:      status,
		AppliedDate: time.Now(),
	}
	if err := db.Create(app).Error; err != nil {
		t.Fatalf("failed to create test application: %v", err)
	}
	return app
}
