package services

import (
	"math"
	"testing"
	"time"

	"trackly/internal/testutil"
)

func TestGetSummary(t *testing.T) {
	t.Run("monthly_and_overall_figures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)

		now := time.Now()
		// Last day of the previous month; immune to end-of-month normalization.
		lastMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)

		testutil.CreateTestIncome(t, db, user.ID, 3000, now)
		testutil.CreateTestIncome(t, db, user.ID, 2000, lastMonth)
		testutil.CreateTestExpense(t, db, user.ID, "food", 500, now)
		testutil.CreateTestExpense(t, db, user.ID, "rent", 1200, lastMonth)
		testutil.CreateTestPlannedExpense(t, db, user.ID, "Insurance", 300, now.AddDate(0, 0, 10))

		summary, err := svc.GetSummary(user.ID, &now)
		testutil.AssertNoError(t, err)

		if summary.MonthlyIncome != 3000 {
			t.Errorf("expected monthly income 3000, got %f", summary.MonthlyIncome)
		}
		if summary.MonthlyExpenses != 500 {
			t.Errorf("expected monthly expenses 500, got %f", summary.MonthlyExpenses)
		}
		if summary.MonthlyBalance != 2500 {
			t.Errorf("expected monthly balance 2500, got %f", summary.MonthlyBalance)
		}
		if summary.TotalPlannedExpenses != 300 {
			t.Errorf("expected planned total 300, got %f", summary.TotalPlannedExpenses)
		}

		// 5000 lifetime income - 1700 lifetime expenses - 300 committed.
		want := 3000.0
		if math.Abs(summary.OverallBalance-want) > 1e-9 {
			t.Errorf("expected overall balance %f, got %f", want, summary.OverallBalance)
		}
	})

	t.Run("planned_total_excludes_due_entries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)

		// Dated today: the roll-forward's responsibility, not this total's.
		testutil.CreateTestPlannedExpense(t, db, user.ID, "Due Today", 100, time.Now())
		testutil.CreateTestPlannedExpense(t, db, user.ID, "Future", 200, time.Now().AddDate(0, 0, 5))

		summary, err := svc.GetSummary(user.ID, nil)
		testutil.AssertNoError(t, err)

		if summary.TotalPlannedExpenses != 200 {
			t.Errorf("expected only strictly future rows counted, got %f", summary.TotalPlannedExpenses)
		}
	})

	t.Run("category_breakdown_sorted_by_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)

		now := time.Now()
		testutil.CreateTestExpense(t, db, user.ID, "food", 50, now)
		testutil.CreateTestExpense(t, db, user.ID, "food", 70, now)
		testutil.CreateTestExpense(t, db, user.ID, "rent", 900, now)

		summary, err := svc.GetSummary(user.ID, &now)
		testutil.AssertNoError(t, err)

		if len(summary.CategoryExpenses) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(summary.CategoryExpenses))
		}
		if summary.CategoryExpenses[0].Category != "rent" || summary.CategoryExpenses[0].Total != 900 {
			t.Errorf("expected rent 900 first, got %+v", summary.CategoryExpenses[0])
		}
		if summary.CategoryExpenses[1].Total != 120 {
			t.Errorf("expected food total 120, got %f", summary.CategoryExpenses[1].Total)
		}
	})

	t.Run("empty_ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)

		summary, err := svc.GetSummary(user.ID, nil)
		testutil.AssertNoError(t, err)

		if summary.MonthlyIncome != 0 || summary.OverallBalance != 0 {
			t.Errorf("expected zero figures, got %+v", summary)
		}
		if summary.CategoryExpenses == nil {
			t.Error("category breakdown should be an empty slice, not nil")
		}
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestIncome(t, db, user2.ID, 9999, time.Now())

		summary, err := svc.GetSummary(user1.ID, nil)
		testutil.AssertNoError(t, err)
		if summary.MonthlyIncome != 0 {
			t.Errorf("expected no income for user1, got %f", summary.MonthlyIncome)
		}
	})
}
