package models

import "time"

// Expense represents a single expense entry. Expenses are created directly by
// the user or by the planned-expense roll-forward, which uses the planned
// expense's title as the merchant. Immutable once created; deletable.
type Expense struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Category    string    `gorm:"not null" json:"category"`
	Amount      float64   `gorm:"not null" json:"amount"`
	ExpenseDate time.Time `gorm:"not null;index" json:"expense_date"`
	Description string    `json:"description,omitempty"`
	Merchant    string    `json:"merchant,omitempty"`
	IsRecurring bool      `gorm:"default:false" json:"is_recurring"`
}
