package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"trackly/internal/models"
	"trackly/internal/services"
)

// --- mock planned expense service ---

type mockPlannedExpenseService struct {
	createFn func(userID uint, in services.PlannedExpenseInput) (*models.PlannedExpense, *models.Expense, error)
	listFn   func(userID uint) ([]models.PlannedExpense, error)
	deleteFn func(userID, plannedExpenseID uint) error
}

func (m *mockPlannedExpenseService) CreatePlannedExpense(userID uint, in services.PlannedExpenseInput) (*models.PlannedExpense, *models.Expense, error) {
	if m.createFn != nil {
		return m.createFn(userID, in)
	}
	return &models.PlannedExpense{}, nil, nil
}

func (m *mockPlannedExpenseService) ListPlannedExpenses(userID uint) ([]models.PlannedExpense, error) {
	if m.listFn != nil {
		return m.listFn(userID)
	}
	return []models.PlannedExpense{}, nil
}

func (m *mockPlannedExpenseService) DeletePlannedExpense(userID, plannedExpenseID uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, plannedExpenseID)
	}
	return nil
}

var _ services.PlannedExpenseServicer = (*mockPlannedExpenseService)(nil)

func setupPlannedExpenseRouter(handler *PlannedExpenseHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/planned-expenses", handler.CreatePlannedExpense)
	auth.GET("/planned-expenses", handler.GetPlannedExpenses)
	auth.DELETE("/planned-expenses/:id", handler.DeletePlannedExpense)
	return r
}

func TestPlannedExpenseHandler_CreatePlannedExpense(t *testing.T) {
	futureDate := time.Now().AddDate(0, 0, 10).Format(time.RFC3339)

	t.Run("returns planned expense for future date", func(t *testing.T) {
		svc := &mockPlannedExpenseService{
			createFn: func(_ uint, in services.PlannedExpenseInput) (*models.PlannedExpense, *models.Expense, error) {
				return &models.PlannedExpense{
					Base:        models.Base{ID: 1},
					Title:       in.Title,
					Category:    in.Category,
					Amount:      in.Amount,
					PlannedDate: in.PlannedDate,
				}, nil, nil
			},
		}
		handler := NewPlannedExpenseHandler(svc, &mockAuditService{})
		r := setupPlannedExpenseRouter(handler)

		rec := doRequest(r, "POST", "/planned-expenses",
			fmt.Sprintf(`{"title":"Car Insurance","category":"insurance","amount":320,"planned_date":%q}`, futureDate))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["planned_expense"] == nil {
			t.Error("expected planned_expense in response")
		}
		if result["expense"] != nil {
			t.Error("future obligation must not be returned as expense")
		}
	})

	t.Run("returns expense when already due", func(t *testing.T) {
		svc := &mockPlannedExpenseService{
			createFn: func(_ uint, in services.PlannedExpenseInput) (*models.PlannedExpense, *models.Expense, error) {
				return nil, &models.Expense{
					Base:     models.Base{ID: 5},
					Category: in.Category,
					Amount:   in.Amount,
					Merchant: in.Title,
				}, nil
			},
		}
		handler := NewPlannedExpenseHandler(svc, &mockAuditService{})
		r := setupPlannedExpenseRouter(handler)

		rec := doRequest(r, "POST", "/planned-expenses",
			fmt.Sprintf(`{"title":"Rent","category":"housing","amount":1500,"planned_date":%q}`,
				time.Now().Format(time.RFC3339)))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["expense"] == nil {
			t.Fatal("expected expense in response")
		}
		expense := result["expense"].(map[string]interface{})
		if expense["merchant"] != "Rent" {
			t.Errorf("expected title as merchant, got %v", expense["merchant"])
		}
	})

	t.Run("returns 400 on missing amount", func(t *testing.T) {
		handler := NewPlannedExpenseHandler(&mockPlannedExpenseService{}, &mockAuditService{})
		r := setupPlannedExpenseRouter(handler)

		rec := doRequest(r, "POST", "/planned-expenses",
			fmt.Sprintf(`{"title":"Rent","category":"housing","planned_date":%q}`, futureDate))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPlannedExpenseHandler_DeletePlannedExpense(t *testing.T) {
	t.Run("returns 400 on non-numeric id", func(t *testing.T) {
		handler := NewPlannedExpenseHandler(&mockPlannedExpenseService{}, &mockAuditService{})
		r := setupPlannedExpenseRouter(handler)

		rec := doRequest(r, "DELETE", "/planned-expenses/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewPlannedExpenseHandler(&mockPlannedExpenseService{}, &mockAuditService{})
		r := setupPlannedExpenseRouter(handler)

		rec := doRequest(r, "DELETE", "/planned-expenses/3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
