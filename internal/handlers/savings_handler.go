package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "trackly/internal/errors"
	"trackly/internal/models"
	"trackly/internal/services"
)

// SavingsHandler handles savings-goal requests.
type SavingsHandler struct {
	savingsService services.SavingsServicer
	auditService   services.AuditServicer
}

// NewSavingsHandler creates a new SavingsHandler.
func NewSavingsHandler(savingsService services.SavingsServicer, auditService services.AuditServicer) *SavingsHandler {
	return &SavingsHandler{savingsService: savingsService, auditService: auditService}
}

// CreateGoalRequest represents the request payload for creating a savings goal.
type CreateGoalRequest struct {
	GoalName        string                `json:"goal_name" binding:"required,min=1,max=100"`
	TargetAmount    float64               `json:"target_amount" binding:"required,gt=0"`
	CurrentAmount   float64               `json:"current_amount" binding:"omitempty,gte=0"`
	TargetDate      *time.Time            `json:"target_date"`
	Description     string                `json:"description" binding:"omitempty,max=500"`
	AllocationType  models.AllocationType `json:"allocation_type" binding:"required,allocation_type"`
	AllocationValue float64               `json:"allocation_value" binding:"gte=0"`
	Frequency       models.GoalFrequency  `json:"frequency" binding:"required,goal_frequency"`
	Color           string                `json:"color" binding:"omitempty,hex_color"`
	Priority        int                   `json:"priority"`
}

// UpdateGoalRequest represents the request payload for a partial goal update.
type UpdateGoalRequest struct {
	GoalName        *string                `json:"goal_name" binding:"omitempty,min=1,max=100"`
	TargetAmount    *float64               `json:"target_amount" binding:"omitempty,gt=0"`
	CurrentAmount   *float64               `json:"current_amount" binding:"omitempty,gte=0"`
	TargetDate      *time.Time             `json:"target_date"`
	Description     *string                `json:"description" binding:"omitempty,max=500"`
	AllocationType  *models.AllocationType `json:"allocation_type" binding:"omitempty,allocation_type"`
	AllocationValue *float64               `json:"allocation_value" binding:"omitempty,gte=0"`
	Frequency       *models.GoalFrequency  `json:"frequency" binding:"omitempty,goal_frequency"`
	Color           *string                `json:"color" binding:"omitempty,hex_color"`
	Priority        *int                   `json:"priority"`
}

// ContributeRequest represents the request payload for a manual contribution.
type ContributeRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// CreateGoal handles the creation of a new savings goal.
// @Summary     Create savings goal
// @Description Create a new savings goal
// @Tags        savings-goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.SavingsGoal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings-goals [post]
func (h *SavingsHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.savingsService.CreateGoal(userID, services.GoalInput{
		GoalName:        req.GoalName,
		TargetAmount:    req.TargetAmount,
		CurrentAmount:   req.CurrentAmount,
		TargetDate:      req.TargetDate,
		Description:     req.Description,
		AllocationType:  req.AllocationType,
		AllocationValue: req.AllocationValue,
		Frequency:       req.Frequency,
		Color:           req.Color,
		Priority:        req.Priority,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_GOAL", "savings_goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"goal_name": req.GoalName, "target_amount": req.TargetAmount})

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals handles listing savings goals with derived figures and the
// aggregate summary.
// @Summary     Get savings goals
// @Description Get all savings goals with derived figures and the aggregate summary
// @Tags        savings-goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.GoalList "Goals and summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings-goals [get]
func (h *SavingsHandler) GetGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	list, err := h.savingsService.ListGoals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetGoal handles retrieving a specific savings goal.
// @Summary     Get savings goal by ID
// @Description Get a specific savings goal by ID
// @Tags        savings-goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     200 {object} models.SavingsGoal "Goal details"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings-goals/{id} [get]
func (h *SavingsHandler) GetGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.savingsService.GetGoalByID(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoal handles a partial update of a savings goal.
// @Summary     Update savings goal
// @Description Partially update a savings goal's mutable fields
// @Tags        savings-goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Goal ID"
// @Param       request body UpdateGoalRequest true "Updated goal fields"
// @Success     200 {object} models.SavingsGoal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input or goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings-goals/{id} [put]
func (h *SavingsHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.savingsService.UpdateGoal(userID, goalID, services.GoalUpdate{
		GoalName:        req.GoalName,
		TargetAmount:    req.TargetAmount,
		CurrentAmount:   req.CurrentAmount,
		TargetDate:      req.TargetDate,
		Description:     req.Description,
		AllocationType:  req.AllocationType,
		AllocationValue: req.AllocationValue,
		Frequency:       req.Frequency,
		Color:           req.Color,
		Priority:        req.Priority,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_GOAL", "savings_goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// ToggleGoal handles flipping a goal between active and paused.
// @Summary     Toggle savings goal
// @Description Flip a goal between active and paused
// @Tags        savings-goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     200 {object} models.SavingsGoal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings-goals/{id}/toggle [post]
func (h *SavingsHandler) ToggleGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.savingsService.ToggleGoal(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "TOGGLE_GOAL", "savings_goal", goalID, c.ClientIP(),
		map[string]interface{}{"is_active": goal.IsActive})

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// Contribute handles a manual contribution to a savings goal.
// @Summary     Contribute to savings goal
// @Description Add a manual contribution to a goal's current amount
// @Tags        savings-goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Goal ID"
// @Param       request body ContributeRequest true "Contribution amount"
// @Success     200 {object} models.SavingsGoal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input or goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings-goals/{id}/contribute [post]
func (h *SavingsHandler) Contribute(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.savingsService.Contribute(userID, goalID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CONTRIBUTE_GOAL", "savings_goal", goalID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount})

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal handles deleting a savings goal.
// @Summary     Delete savings goal
// @Description Delete a savings goal by ID (idempotent)
// @Tags        savings-goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings-goals/{id} [delete]
func (h *SavingsHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.savingsService.DeleteGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_GOAL", "savings_goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Savings goal deleted successfully"})
}
