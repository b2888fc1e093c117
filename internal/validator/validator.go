// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	monthRegex    = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("month", validateMonth)
		_ = v.RegisterValidation("allocation_type", validateAllocationType)
		_ = v.RegisterValidation("goal_frequency", validateGoalFrequency)
		_ = v.RegisterValidation("application_status", validateApplicationStatus)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateMonth(fl validator.FieldLevel) bool {
	return monthRegex.MatchString(fl.Field().String())
}

func validateAllocationType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "fixed", "percentage":
		return true
	}
	return false
}

func validateGoalFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "monthly", "overall":
		return true
	}
	return false
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "wishlist", "applied", "interviewing", "offer", "rejected", "accepted":
		return true
	}
	return false
}
