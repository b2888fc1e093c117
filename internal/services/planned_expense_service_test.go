package services

import (
	"testing"
	"time"

	"trackly/internal/models"
	"trackly/internal/testutil"
)

func TestCreatePlannedExpense(t *testing.T) {
	t.Run("future_date_stays_planned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlannedExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		planned, converted, err := svc.CreatePlannedExpense(user.ID, PlannedExpenseInput{
			Title:       "Car Insurance",
			Category:    "insurance",
			Amount:      320,
			PlannedDate: time.Now().AddDate(0, 0, 10),
		})
		testutil.AssertNoError(t, err)

		if planned == nil {
			t.Fatal("expected a planned expense")
		}
		if converted != nil {
			t.Fatal("future obligation must not be converted")
		}
	})

	t.Run("due_date_converts_immediately", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlannedExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		planned, converted, err := svc.CreatePlannedExpense(user.ID, PlannedExpenseInput{
			Title:       "Rent",
			Category:    "housing",
			Amount:      1500,
			PlannedDate: time.Now(),
		})
		testutil.AssertNoError(t, err)

		if planned != nil {
			t.Fatal("due obligation must not be stored as planned")
		}
		if converted == nil {
			t.Fatal("expected an expense")
		}
		if converted.Merchant != "Rent" {
			t.Errorf("expected title carried as merchant, got %q", converted.Merchant)
		}

		var plannedCount int64
		db.Model(&models.PlannedExpense{}).Where("user_id = ?", user.ID).Count(&plannedCount)
		if plannedCount != 0 {
			t.Errorf("expected no planned rows, got %d", plannedCount)
		}
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlannedExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, _, err := svc.CreatePlannedExpense(user.ID, PlannedExpenseInput{
			Title:       "Rent",
			Category:    "housing",
			Amount:      0,
			PlannedDate: time.Now().AddDate(0, 0, 10),
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListPlannedExpenses(t *testing.T) {
	t.Run("rolls_forward_due_entries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlannedExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		yesterday := time.Now().AddDate(0, 0, -1)
		nextWeek := time.Now().AddDate(0, 0, 7)
		testutil.CreateTestPlannedExpense(t, db, user.ID, "Rent", 1500, yesterday)
		testutil.CreateTestPlannedExpense(t, db, user.ID, "Concert", 80, nextWeek)

		planned, err := svc.ListPlannedExpenses(user.ID)
		testutil.AssertNoError(t, err)

		if len(planned) != 1 {
			t.Fatalf("expected only the future entry, got %d", len(planned))
		}
		if planned[0].Title != "Concert" {
			t.Errorf("expected Concert to remain planned, got %s", planned[0].Title)
		}

		var expense models.Expense
		err = db.Where("user_id = ? AND merchant = ?", user.ID, "Rent").First(&expense).Error
		testutil.AssertNoError(t, err)
		if expense.Amount != 1500 {
			t.Errorf("expected converted amount 1500, got %f", expense.Amount)
		}
		if expense.ExpenseDate.Sub(yesterday).Abs() > time.Second {
			t.Errorf("converted expense should keep the planned date, got %v", expense.ExpenseDate)
		}
	})

	t.Run("roll_forward_is_idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlannedExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestPlannedExpense(t, db, user.ID, "Rent", 1500, time.Now().AddDate(0, 0, -1))

		_, err := svc.ListPlannedExpenses(user.ID)
		testutil.AssertNoError(t, err)
		_, err = svc.ListPlannedExpenses(user.ID)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Expense{}).Where("user_id = ? AND merchant = ?", user.ID, "Rent").Count(&count)
		if count != 1 {
			t.Errorf("expected exactly one converted expense, got %d", count)
		}
	})

	t.Run("ordered_by_planned_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlannedExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestPlannedExpense(t, db, user.ID, "Later", 10, time.Now().AddDate(0, 1, 0))
		testutil.CreateTestPlannedExpense(t, db, user.ID, "Sooner", 10, time.Now().AddDate(0, 0, 3))

		planned, err := svc.ListPlannedExpenses(user.ID)
		testutil.AssertNoError(t, err)

		if len(planned) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(planned))
		}
		if planned[0].Title != "Sooner" {
			t.Errorf("expected soonest entry first, got %s", planned[0].Title)
		}
	})
}

func TestDeletePlannedExpense(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlannedExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		pe := testutil.CreateTestPlannedExpense(t, db, user.ID, "Rent", 1500, time.Now().AddDate(0, 0, 10))

		testutil.AssertNoError(t, svc.DeletePlannedExpense(user.ID, pe.ID))
		testutil.AssertNoError(t, svc.DeletePlannedExpense(user.ID, pe.ID))
	})
}
