package models

import "time"

// Income represents a single income entry. When IsHourly is set, Amount is
// derived from HourlyRate * HoursWorked at creation time and the raw amount
// submitted by the client is ignored. Income rows are immutable once created;
// there is no update path, only create and delete.
type Income struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Source      string    `gorm:"not null" json:"source"`
	Amount      float64   `gorm:"not null" json:"amount"`
	IncomeDate  time.Time `gorm:"not null;index" json:"income_date"`
	Category    string    `gorm:"not null" json:"category"`
	Description string    `json:"description,omitempty"`
	IsRecurring bool      `gorm:"default:false" json:"is_recurring"`
	IsHourly    bool      `gorm:"default:false" json:"is_hourly"`
	HourlyRate  *float64  `json:"hourly_rate,omitempty"`
	HoursWorked *float64  `json:"hours_worked,omitempty"`
}
