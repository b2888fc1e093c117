package models

import "time"

// ApplicationStatus represents where a job application sits in the pipeline.
type ApplicationStatus string

const (
	ApplicationStatusWishlist     ApplicationStatus = "wishlist"
	ApplicationStatusApplied      ApplicationStatus = "applied"
	ApplicationStatusInterviewing ApplicationStatus = "interviewing"
	ApplicationStatusOffer        ApplicationStatus = "offer"
	ApplicationStatusRejected     ApplicationStatus = "rejected"
	ApplicationStatusAccepted     ApplicationStatus = "accepted"
)

// Valid reports whether s is one of the known pipeline statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusWishlist, ApplicationStatusApplied, ApplicationStatusInterviewing,
		ApplicationStatusOffer, ApplicationStatusRejected, ApplicationStatusAccepted:
		return true
	}
	return false
}

// JobApplication represents a tracked job application.
type JobApplication struct {
	Base
	UserID      uint              `gorm:"not null;index" json:"user_id"`
	Company     string            `gorm:"not null" json:"company"`
	Position    string            `gorm:"not null" json:"position"`
	Status      ApplicationStatus `gorm:"not null;default:applied" json:"status"`
	Location    string            `json:"location,omitempty"`
	URL         string            `json:"url,omitempty"`
	SalaryMin   *float64          `json:"salary_min,omitempty"`
	SalaryMax   *float64          `json:"salary_max,omitempty"`
	AppliedDate time.Time         `gorm:"not null" json:"applied_date"`
	Notes       string            `json:"notes,omitempty"`
}
