// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Invite codes are normalized before validation, so lowercase input is
// accepted here and uppercased at the service boundary.
var joinCodeRegex = regexp.MustCompile(`^[A-Za-z0-9]{6}$`)

var yearMonthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("member_role", validateMemberRole)
		_ = v.RegisterValidation("join_code", validateJoinCode)
		_ = v.RegisterValidation("year_month", validateYearMonth)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateMemberRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "owner", "member":
		return true
	}
	return false
}

func validateJoinCode(fl validator.FieldLevel) bool {
	return joinCodeRegex.MatchString(fl.Field().String())
}

func validateYearMonth(fl validator.FieldLevel) bool {
	return yearMonthRegex.MatchString(fl.Field().String())
}
