package models

import "time"

// PlannedExpense represents a future obligation. The invariant is that no
// stored row has PlannedDate on or before today: such rows are converted to
// Expense records by the roll-forward on read, and submissions already due
// at creation time are inserted directly as expenses.
type PlannedExpense struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	Category    string    `gorm:"not null" json:"category"`
	Amount      float64   `gorm:"not null" json:"amount"`
	PlannedDate time.Time `gorm:"not null;index" json:"planned_date"`
	Description string    `json:"description,omitempty"`
	IsPaid      bool      `gorm:"default:false" json:"is_paid"`
}
