package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "trackly/internal/errors"
	"trackly/internal/services"
)

// IncomeHandler handles income-related requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
	auditService  services.AuditServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, auditService services.AuditServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, auditService: auditService}
}

// CreateIncomeRequest represents the request payload for creating an income
// entry. Amount may be omitted when is_hourly is set; it is then derived
// from hourly_rate * hours_worked.
type CreateIncomeRequest struct {
	Source      string    `json:"source" binding:"required,min=1,max=100"`
	Amount      float64   `json:"amount" binding:"omitempty,gt=0"`
	HourlyRate  *float64  `json:"hourly_rate" binding:"omitempty,gt=0"`
	HoursWorked *float64  `json:"hours_worked" binding:"omitempty,gt=0"`
	IsHourly    bool      `json:"is_hourly"`
	IncomeDate  time.Time `json:"income_date" binding:"required"`
	Category    string    `json:"category" binding:"required,min=1,max=100"`
	Description string    `json:"description" binding:"omitempty,max=500"`
	IsRecurring bool      `json:"is_recurring"`
}

// CreateIncome handles the creation of a new income entry.
// @Summary     Create income
// @Description Create a new income entry; triggers the savings allocation pass
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateIncomeRequest true "Income details"
// @Success     201 {object} models.Income "Income created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [post]
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, err := h.incomeService.CreateIncome(userID, services.IncomeInput{
		Source:      req.Source,
		Amount:      req.Amount,
		HourlyRate:  req.HourlyRate,
		HoursWorked: req.HoursWorked,
		IsHourly:    req.IsHourly,
		IncomeDate:  req.IncomeDate,
		Category:    req.Category,
		Description: req.Description,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INCOME", "income", income.ID, c.ClientIP(),
		map[string]interface{}{"source": req.Source, "amount": income.Amount})

	c.JSON(http.StatusCreated, gin.H{"income": income})
}

// GetIncome handles listing income entries.
// @Summary     Get income
// @Description Get income entries, optionally filtered to a month (YYYY-MM)
// @Tags        income
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month filter (YYYY-MM)"
// @Success     200 {object} map[string]interface{} "Income entries"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [get]
func (h *IncomeHandler) GetIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := parseMonthQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.incomeService.GetUserIncome(userID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": entries})
}

// DeleteIncome handles deleting an income entry.
// @Summary     Delete income
// @Description Delete an income entry by ID (idempotent)
// @Tags        income
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income ID"
// @Success     200 {object} MessageResponse "Income deleted"
// @Failure     400 {object} ErrorResponse "Invalid income ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id} [delete]
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncome(userID, incomeID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INCOME", "income", incomeID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Income deleted successfully"})
}
