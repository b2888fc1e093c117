package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "trackly/internal/errors"
	"trackly/internal/services"
)

// PlannedExpenseHandler handles planned-expense requests.
type PlannedExpenseHandler struct {
	plannedExpenseService services.PlannedExpenseServicer
	auditService          services.AuditServicer
}

// NewPlannedExpenseHandler creates a new PlannedExpenseHandler.
func NewPlannedExpenseHandler(plannedExpenseService services.PlannedExpenseServicer, auditService services.AuditServicer) *PlannedExpenseHandler {
	return &PlannedExpenseHandler{plannedExpenseService: plannedExpenseService, auditService: auditService}
}

// CreatePlannedExpenseRequest represents the request payload for creating a
// planned expense.
type CreatePlannedExpenseRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=100"`
	Category    string    `json:"category" binding:"required,min=1,max=100"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	PlannedDate time.Time `json:"planned_date" binding:"required"`
	Description string    `json:"description" binding:"omitempty,max=500"`
}

// CreatePlannedExpense handles the creation of a new planned expense.
// A submission already due today or earlier is stored directly as an expense.
// @Summary     Create planned expense
// @Description Create a future obligation; already-due dates are inserted directly as expenses
// @Tags        planned-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePlannedExpenseRequest true "Planned expense details"
// @Success     201 {object} map[string]interface{} "Planned expense or converted expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /planned-expenses [post]
func (h *PlannedExpenseHandler) CreatePlannedExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePlannedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	planned, converted, err := h.plannedExpenseService.CreatePlannedExpense(userID, services.PlannedExpenseInput{
		Title:       req.Title,
		Category:    req.Category,
		Amount:      req.Amount,
		PlannedDate: req.PlannedDate,
		Description: req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	if converted != nil {
		h.auditService.Log(userID, "CREATE_PLANNED_EXPENSE_AS_EXPENSE", "expense", converted.ID, c.ClientIP(),
			map[string]interface{}{"title": req.Title, "amount": req.Amount})
		c.JSON(http.StatusCreated, gin.H{"expense": converted})
		return
	}

	h.auditService.Log(userID, "CREATE_PLANNED_EXPENSE", "planned_expense", planned.ID, c.ClientIP(),
		map[string]interface{}{"title": req.Title, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"planned_expense": planned})
}

// GetPlannedExpenses handles listing planned expenses. Due entries are rolled
// forward into expenses before the list is returned.
// @Summary     Get planned expenses
// @Description Roll forward due entries, then list strictly-future planned expenses
// @Tags        planned-expenses
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Planned expenses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /planned-expenses [get]
func (h *PlannedExpenseHandler) GetPlannedExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	planned, err := h.plannedExpenseService.ListPlannedExpenses(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"planned_expenses": planned})
}

// DeletePlannedExpense handles deleting a planned expense.
// @Summary     Delete planned expense
// @Description Delete a planned expense by ID (idempotent)
// @Tags        planned-expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Planned expense ID"
// @Success     200 {object} MessageResponse "Planned expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid planned expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /planned-expenses/{id} [delete]
func (h *PlannedExpenseHandler) DeletePlannedExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	plannedExpenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.plannedExpenseService.DeletePlannedExpense(userID, plannedExpenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PLANNED_EXPENSE", "planned_expense", plannedExpenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Planned expense deleted successfully"})
}
