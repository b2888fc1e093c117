package models

import "time"

// AllocationType describes how a goal's automatic contribution is computed.
type AllocationType string

const (
	AllocationTypeFixed      AllocationType = "fixed"
	AllocationTypePercentage AllocationType = "percentage"
)

// GoalFrequency describes whether a goal is funded automatically each income
// event (monthly) or only through manual contributions (overall).
type GoalFrequency string

const (
	GoalFrequencyMonthly GoalFrequency = "monthly"
	GoalFrequencyOverall GoalFrequency = "overall"
)

// SavingsGoal represents a savings target. CurrentAmount grows through
// automatic allocation on income, manual contributions, and direct edits.
// IsCompleted latches to true once CurrentAmount reaches TargetAmount and is
// never reset automatically. Priority orders the allocation pass but has no
// effect on amounts; it is reserved for a future capped-funding policy.
type SavingsGoal struct {
	Base
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	GoalName        string         `gorm:"not null" json:"goal_name"`
	TargetAmount    float64        `gorm:"not null" json:"target_amount"`
	CurrentAmount   float64        `gorm:"default:0" json:"current_amount"`
	TargetDate      *time.Time     `json:"target_date,omitempty"`
	Description     string         `json:"description,omitempty"`
	AllocationType  AllocationType `gorm:"not null" json:"allocation_type"`
	AllocationValue float64        `gorm:"not null" json:"allocation_value"`
	Frequency       GoalFrequency  `gorm:"not null" json:"frequency"`
	Color           string         `json:"color,omitempty"`
	Priority        int            `gorm:"default:0" json:"priority"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	IsCompleted     bool           `gorm:"default:false" json:"is_completed"`
}
