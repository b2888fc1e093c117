package models

import "time"

// Budget represents a monthly spending limit for an expense category.
// A budget is active for a given month when its start date is on or before
// the end of that month and its end date, if any, is on or after the start
// of that month. At most one budget per category may be active in any month.
type Budget struct {
	Base
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	Category     string     `gorm:"not null" json:"category"`
	MonthlyLimit float64    `gorm:"not null" json:"monthly_limit"`
	StartDate    time.Time  `gorm:"not null" json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}
