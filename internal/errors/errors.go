// Package errors provides custom error types for the Trackly API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInvalidMonth   = &AppError{Code: "INVALID_MONTH", Message: "Month must be in YYYY-MM format", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Income & expense errors.
var (
	ErrIncomeNotFound  = &AppError{Code: "INCOME_NOT_FOUND", Message: "Income entry not found", StatusCode: http.StatusNotFound}
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
)

// Budget errors.
var (
	ErrBudgetNotFound  = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrDuplicateBudget = &AppError{Code: "DUPLICATE_BUDGET", Message: "An active budget for this category already exists in the requested period", StatusCode: http.StatusConflict}
)

// Planned expense errors.
var (
	ErrPlannedExpenseNotFound = &AppError{Code: "PLANNED_EXPENSE_NOT_FOUND", Message: "Planned expense not found", StatusCode: http.StatusNotFound}
)

// Savings goal errors.
var (
	ErrGoalNotFound        = &AppError{Code: "GOAL_NOT_FOUND", Message: "Savings goal not found", StatusCode: http.StatusNotFound}
	ErrInvalidAllocation   = &AppError{Code: "INVALID_ALLOCATION", Message: "Percentage allocation must be between 0 and 100", StatusCode: http.StatusBadRequest}
	ErrInvalidContribution = &AppError{Code: "INVALID_CONTRIBUTION", Message: "Contribution amount must be greater than zero", StatusCode: http.StatusBadRequest}
)

// Job application errors.
var (
	ErrApplicationNotFound = &AppError{Code: "APPLICATION_NOT_FOUND", Message: "Job application not found", StatusCode: http.StatusNotFound}
	ErrInvalidSalaryRange  = &AppError{Code: "INVALID_SALARY_RANGE", Message: "Minimum salary cannot exceed maximum salary", StatusCode: http.StatusBadRequest}
)
