package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "trackly/internal/errors"
	"trackly/internal/models"
	"trackly/internal/services"
)

// --- mock budget service ---

type mockBudgetService struct {
	createBudgetFn    func(userID uint, category string, monthlyLimit float64, startDate time.Time, endDate *time.Time) (*models.Budget, error)
	getUserBudgetsFn  func(userID uint, month *time.Time) ([]models.Budget, error)
	getBudgetByIDFn   func(userID, budgetID uint) (*models.Budget, error)
	getBudgetStatusFn func(userID uint, month time.Time) ([]services.BudgetStatus, error)
	deleteBudgetFn    func(userID, budgetID uint) error
}

func (m *mockBudgetService) CreateBudget(userID uint, category string, monthlyLimit float64, startDate time.Time, endDate *time.Time) (*models.Budget, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(userID, category, monthlyLimit, startDate, endDate)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) GetUserBudgets(userID uint, month *time.Time) ([]models.Budget, error) {
	if m.getUserBudgetsFn != nil {
		return m.getUserBudgetsFn(userID, month)
	}
	return []models.Budget{}, nil
}

func (m *mockBudgetService) GetBudgetByID(userID, budgetID uint) (*models.Budget, error) {
	if m.getBudgetByIDFn != nil {
		return m.getBudgetByIDFn(userID, budgetID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) GetBudgetStatus(userID uint, month time.Time) ([]services.BudgetStatus, error) {
	if m.getBudgetStatusFn != nil {
		return m.getBudgetStatusFn(userID, month)
	}
	return []services.BudgetStatus{}, nil
}

func (m *mockBudgetService) DeleteBudget(userID, budgetID uint) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(userID, budgetID)
	}
	return nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/budgets", handler.CreateBudget)
	auth.GET("/budgets", handler.GetBudgets)
	auth.GET("/budgets/status", handler.GetBudgetStatus)
	auth.DELETE("/budgets/:id", handler.DeleteBudget)
	return r
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(_ uint, category string, monthlyLimit float64, startDate time.Time, _ *time.Time) (*models.Budget, error) {
				return &models.Budget{
					Base:         models.Base{ID: 1},
					Category:     category,
					MonthlyLimit: monthlyLimit,
					StartDate:    startDate,
				}, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"category":"groceries","monthly_limit":400,"start_date":"2025-01-01T00:00:00Z"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		budget := result["budget"].(map[string]interface{})
		if budget["category"] != "groceries" {
			t.Errorf("expected groceries, got %v", budget["category"])
		}
	})

	t.Run("returns 409 on duplicate category", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(_ uint, _ string, _ float64, _ time.Time, _ *time.Time) (*models.Budget, error) {
				return nil, apperrors.ErrDuplicateBudget
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"category":"groceries","monthly_limit":400,"start_date":"2025-01-01T00:00:00Z"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_BUDGET")
	})

	t.Run("returns 400 on missing limit", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"category":"groceries","start_date":"2025-01-01T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetBudgetStatus(t *testing.T) {
	t.Run("forwards month to service", func(t *testing.T) {
		var gotMonth time.Time
		svc := &mockBudgetService{
			getBudgetStatusFn: func(_ uint, month time.Time) ([]services.BudgetStatus, error) {
				gotMonth = month
				return []services.BudgetStatus{}, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/status?month=2025-03", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotMonth.Year() != 2025 || gotMonth.Month() != time.March {
			t.Errorf("unexpected month: %v", gotMonth)
		}
	})

	t.Run("returns 400 on malformed month", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/status?month=2025-3", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_MONTH")
	})
}
