package services

import (
	"testing"
	"time"

	"trackly/internal/models"
	"trackly/internal/pagination"
	"trackly/internal/testutil"
)

func TestCreateApplication(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJobApplicationService(db)
		user := testutil.CreateTestUser(t, db)

		min := 90000.0
		max := 120000.0
		app, err := svc.CreateApplication(user.ID, ApplicationInput{
			Company:   "Initech",
			Position:  "Backend Engineer",
			Status:    models.ApplicationStatusInterviewing,
			SalaryMin: &min,
			SalaryMax: &max,
		})
		testutil.AssertNoError(t, err)

		if app.ID == 0 {
			t.Fatal("expected non-zero application ID")
		}
		if app.Status != models.ApplicationStatusInterviewing {
			t.Errorf("expected interviewing, got %s", app.Status)
		}
	})

	t.Run("defaults_status_and_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJobApplicationService(db)
		user := testutil.CreateTestUser(t, db)

		app, err := svc.CreateApplication(user.ID, ApplicationInput{
			Company:  "Initech",
			Position: "Backend Engineer",
		})
		testutil.AssertNoError(t, err)

		if app.Status != models.ApplicationStatusApplied {
			t.Errorf("expected default status applied, got %s", app.Status)
		}
		if app.AppliedDate.IsZero() {
			t.Error("expected applied date defaulted to now")
		}
	})

	t.Run("rejects_min_above_max", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJobApplicationService(db)
		user := testutil.CreateTestUser(t, db)

		min := 150000.0
		max := 120000.0
		_, err := svc.CreateApplication(user.ID, ApplicationInput{
			Company:   "Initech",
			Position:  "Backend Engineer",
			SalaryMin: &min,
			SalaryMax: &max,
		})
		testutil.AssertAppError(t, err, "INVALID_SALARY_RANGE")
	})

	t.Run("rejects_negative_salary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJobApplicationService(db)
		user := testutil.CreateTestUser(t, db)

		min := -1.0
		_, err := svc.CreateApplication(user.ID, ApplicationInput{
			Company:   "Initech",
			Position:  "Backend Engineer",
			SalaryMin: &min,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("requires_company_and_position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJobApplicationService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateApplication(user.ID, ApplicationInput{Company: "Initech"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserApplications(t *testing.T) {
	t.Run("paginated_newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJobApplicationService(db)
		user := testutil.CreateTestUser(t, db)

		older := testutil.CreateTestApplication(t, db, user.ID, models.ApplicationStatusApplied)
		db.Model(older).Update("applied_date", time.Now().AddDate(0, 0, -30))
		testutil.CreateTestApplication(t, db, user.ID, models.ApplicationStatusApplied)

		page := pagination.PageRequest{Page: 1, PageSize: 1}
		result, err := svc.GetUserApplications(user.ID, page, nil)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 total items, got %d", result.TotalItems)
		}
		if result.TotalPages != 2 {
			t.Errorf("expected 2 pages, got %d", result.TotalPages)
		}
		if len(result.Data) != 1 {
			t.Fatalf("expected 1 item on page, got %d", len(result.Data))
		}
		if result.Data[0].ID == older.ID {
			t.Error("expected newest application first")
		}
	})

	t.Run("status_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJobApplicationService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestApplication(t, db, user.ID, models.ApplicationStatusApplied)
		testutil.CreateTestApplication(t, db, user.ID, models.ApplicationStatusOffer)

		status := models.ApplicationStatusOffer
		result, err := svc.GetUserApplications(user.ID, pagination.PageRequest{}, &status)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected 1 offer, got %d", result.TotalItems)
		}
		if result.Data[0].Status != models.ApplicationStatusOffer {
			t.Errorf("expected offer status, got %s", result.Data[0].Status)
		}
	})

	t.Run("excludes_other_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJobApplicationService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestApplication(t, db, user2.ID, models.ApplicationStatusApplied)

		result, err := svc.GetUserApplications(user1.ID, pagination.PageRequest{}, nil)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 0 {
			t.Errorf("expected no applications for user1, got %d", result.TotalItems)
		}
	})
}

func TestUpdateApplication(t *testing.T) {
	t.Run("status_transition", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJobApplicationService(db)
		user := testutil.CreateTestUser(t, db)
		app := testutil.CreateTestApplication(t, db, user.ID, models.ApplicationStatusApplied)

		status := models.ApplicationStatusOffer
		updated, err := svc.UpdateApplication(user.ID, app.ID, ApplicationUpdate{Status: &status})
		testutil.AssertNoError(t, err)

		if updated.Status != models.ApplicationStatusOffer {
			t.Errorf("expected offer status, got %s", updated.Status)
		}
		if updated.Company != app.Company {
			t.Error("untouched fields must be preserved")
		}
	})

	t.Run("validates_salary_against_post_edit_values", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJobApplicationService(db)
		user := testutil.CreateTestUser(t, db)
		app := testutil.CreateTestApplication(t, db, user.ID, models.ApplicationStatusApplied)

		max := 100000.0
		_, err := svc.UpdateApplication(user.ID, app.ID, ApplicationUpdate{SalaryMax: &max})
		testutil.AssertNoError(t, err)

		// Raising the minimum above the stored maximum must fail.
		min := 150000.0
		_, err = svc.UpdateApplication(user.ID, app.ID, ApplicationUpdate{SalaryMin: &min})
		testutil.AssertAppError(t, err, "INVALID_SALARY_RANGE")
	})

	t.Run("missing_application", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJobApplicationService(db)
		user := testutil.CreateTestUser(t, db)

		status := models.ApplicationStatusOffer
		_, err := svc.UpdateApplication(user.ID, 9999, ApplicationUpdate{Status: &status})
		testutil.AssertAppError(t, err, "APPLICATION_NOT_FOUND")
	})

	t.Run("foreign_application", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJobApplicationService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		app := testutil.CreateTestApplication(t, db, user2.ID, models.ApplicationStatusApplied)

		status := models.ApplicationStatusOffer
		_, err := svc.UpdateApplication(user1.ID, app.ID, ApplicationUpdate{Status: &status})
		testutil.AssertAppError(t, err, "APPLICATION_NOT_FOUND")
	})
}

func TestGetStatusCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewJobApplicationService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestApplication(t, db, user.ID, models.ApplicationStatusApplied)
	testutil.CreateTestApplication(t, db, user.ID, models.ApplicationStatusApplied)
	testutil.CreateTestApplication(t, db, user.ID, models.ApplicationStatusRejected)

	counts, err := svc.GetStatusCounts(user.ID)
	testutil.AssertNoError(t, err)

	byStatus := map[models.ApplicationStatus]int64{}
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	if byStatus[models.ApplicationStatusApplied] != 2 {
		t.Errorf("expected 2 applied, got %d", byStatus[models.ApplicationStatusApplied])
	}
	if byStatus[models.ApplicationStatusRejected] != 1 {
		t.Errorf("expected 1 rejected, got %d", byStatus[models.ApplicationStatusRejected])
	}
}

func TestDeleteApplication(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJobApplicationService(db)
		user := testutil.CreateTestUser(t, db)
		app := testutil.CreateTestApplication(t, db, user.ID, models.ApplicationStatusApplied)

		testutil.AssertNoError(t, svc.DeleteApplication(user.ID, app.ID))
		testutil.AssertNoError(t, svc.DeleteApplication(user.ID, app.ID))

		_, err := svc.GetApplicationByID(user.ID, app.ID)
		testutil.AssertAppError(t, err, "APPLICATION_NOT_FOUND")
	})
}
