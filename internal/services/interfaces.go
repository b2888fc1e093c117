package services

import (
	"time"

	"trackly/internal/models"
	"trackly/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// IncomeInput holds the fields for creating an income entry.
type IncomeInput struct {
	Source      string
	Amount      float64
	HourlyRate  *float64
	HoursWorked *float64
	IsHourly    bool
	IncomeDate  time.Time
	Category    string
	Description string
	IsRecurring bool
}

// IncomeServicer defines the contract for income-related business logic.
type IncomeServicer interface {
	CreateIncome(userID uint, in IncomeInput) (*models.Income, error)
	GetUserIncome(userID uint, month *time.Time) ([]models.Income, error)
	DeleteIncome(userID, incomeID uint) error
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID uint, category string, amount float64, date time.Time, description, merchant string, isRecurring bool) (*models.Expense, error)
	GetUserExpenses(userID uint, month *time.Time) ([]models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
}

// BudgetStatus contains spend-vs-limit data for one budget in a month.
// Percentage is clamped to [0, 100] and is zero for non-positive limits.
type BudgetStatus struct {
	Budget       models.Budget `json:"budget"`
	Spent        float64       `json:"spent"`
	Remaining    float64       `json:"remaining"`
	Percentage   float64       `json:"percentage"`
	IsOverBudget bool          `json:"isOverBudget"`
	IsNearLimit  bool          `json:"isNearLimit"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID uint, category string, monthlyLimit float64, startDate time.Time, endDate *time.Time) (*models.Budget, error)
	GetUserBudgets(userID uint, month *time.Time) ([]models.Budget, error)
	GetBudgetByID(userID, budgetID uint) (*models.Budget, error)
	GetBudgetStatus(userID uint, month time.Time) ([]BudgetStatus, error)
	DeleteBudget(userID, budgetID uint) error
}

// PlannedExpenseInput holds the fields for creating a planned expense.
type PlannedExpenseInput struct {
	Title       string
	Category    string
	Amount      float64
	PlannedDate time.Time
	Description string
}

// PlannedExpenseServicer defines the contract for planned-expense business
// logic, including the read-time roll-forward of due entries.
type PlannedExpenseServicer interface {
	// CreatePlannedExpense stores a future obligation. If the planned date is
	// already due (on or before today) the entry is inserted directly as an
	// expense instead; exactly one of the two return values is non-nil.
	CreatePlannedExpense(userID uint, in PlannedExpenseInput) (*models.PlannedExpense, *models.Expense, error)
	ListPlannedExpenses(userID uint) ([]models.PlannedExpense, error)
	DeletePlannedExpense(userID, plannedExpenseID uint) error
}

// GoalInput holds the fields for creating a savings goal.
type GoalInput struct {
	GoalName        string
	TargetAmount    float64
	CurrentAmount   float64
	TargetDate      *time.Time
	Description     string
	AllocationType  models.AllocationType
	AllocationValue float64
	Frequency       models.GoalFrequency
	Color           string
	Priority        int
}

// GoalUpdate holds the mutable fields for a partial goal update. Nil fields
// are left unchanged.
type GoalUpdate struct {
	GoalName        *string
	TargetAmount    *float64
	CurrentAmount   *float64
	TargetDate      *time.Time
	Description     *string
	AllocationType  *models.AllocationType
	AllocationValue *float64
	Frequency       *models.GoalFrequency
	Color           *string
	Priority        *int
}

// GoalView is a savings goal with its derived, read-only figures.
type GoalView struct {
	models.SavingsGoal
	CalculatedAllocation float64 `json:"calculated_allocation"`
	Progress             float64 `json:"progress"`
	Remaining            float64 `json:"remaining"`
}

// GoalSummary aggregates the user's goal set as shown on the dashboard.
type GoalSummary struct {
	TotalMonthlyAllocation    float64 `json:"total_monthly_allocation"`
	TotalOverallAllocation    float64 `json:"total_overall_allocation"`
	TotalAllocation           float64 `json:"total_allocation"`
	ActiveGoals               int     `json:"active_goals"`
	CompletedGoals            int     `json:"completed_goals"`
	TotalCurrentlySaved       float64 `json:"total_currently_saved"`
	TotalTargetAmount         float64 `json:"total_target_amount"`
	OverallProgressPercentage float64 `json:"overall_progress_percentage"`
}

// GoalList is the goals-list response: every goal with derived figures plus
// the aggregate summary.
type GoalList struct {
	Goals   []GoalView  `json:"goals"`
	Summary GoalSummary `json:"summary"`
}

// SavingsServicer defines the contract for savings-goal business logic,
// including the automatic allocation pass on new income.
type SavingsServicer interface {
	CreateGoal(userID uint, in GoalInput) (*models.SavingsGoal, error)
	ListGoals(userID uint) (*GoalList, error)
	GetGoalByID(userID, goalID uint) (*models.SavingsGoal, error)
	UpdateGoal(userID, goalID uint, in GoalUpdate) (*models.SavingsGoal, error)
	ToggleGoal(userID, goalID uint) (*models.SavingsGoal, error)
	Contribute(userID, goalID uint, amount float64) (*models.SavingsGoal, error)
	DeleteGoal(userID, goalID uint) error

	// AllocateFromIncome applies automatic contributions to all active
	// monthly goals for a new income event. Per-goal failures are logged
	// and skipped; the returned error covers only the initial goal fetch.
	AllocateFromIncome(userID uint, incomeAmount float64, incomeDate time.Time) error

	// TotalCurrentlySaved sums current_amount across all of the user's
	// goals, active or not.
	TotalCurrentlySaved(userID uint) (float64, error)
}

// CategoryExpense is a per-category expense total for a month.
type CategoryExpense struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// Summary is the financial summary for a requested month plus lifetime
// balance figures. Field names follow the dashboard wire contract.
type Summary struct {
	MonthlyIncome        float64           `json:"monthlyIncome"`
	MonthlyExpenses      float64           `json:"monthlyExpenses"`
	MonthlyBalance       float64           `json:"monthlyBalance"`
	OverallBalance       float64           `json:"overallBalance"`
	TotalPlannedExpenses float64           `json:"totalPlannedExpenses"`
	CategoryExpenses     []CategoryExpense `json:"categoryExpenses"`
}

// SummaryServicer defines the contract for balance calculation.
type SummaryServicer interface {
	GetSummary(userID uint, month *time.Time) (*Summary, error)
}

// ApplicationInput holds the fields for creating a job application.
type ApplicationInput struct {
	Company     string
	Position    string
	Status      models.ApplicationStatus
	Location    string
	URL         string
	SalaryMin   *float64
	SalaryMax   *float64
	AppliedDate time.Time
	Notes       string
}

// ApplicationUpdate holds the mutable fields for a partial application
// update. Nil fields are left unchanged.
type ApplicationUpdate struct {
	Company   *string
	Position  *string
	Status    *models.ApplicationStatus
	Location  *string
	URL       *string
	SalaryMin *float64
	SalaryMax *float64
	Notes     *string
}

// StatusCount is the number of applications in one pipeline status.
type StatusCount struct {
	Status models.ApplicationStatus `json:"status"`
	Count  int64                    `json:"count"`
}

// JobApplicationServicer defines the contract for job-application tracking.
type JobApplicationServicer interface {
	CreateApplication(userID uint, in ApplicationInput) (*models.JobApplication, error)
	GetUserApplications(userID uint, page pagination.PageRequest, status *models.ApplicationStatus) (*pagination.PageResponse[models.JobApplication], error)
	GetApplicationByID(userID, applicationID uint) (*models.JobApplication, error)
	UpdateApplication(userID, applicationID uint, in ApplicationUpdate) (*models.JobApplication, error)
	DeleteApplication(userID, applicationID uint) error
	GetStatusCounts(userID uint) ([]StatusCount, error)
}

// AuditServicer defines the contract for best-effort audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]any)
}
