package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Month validation, YYYY-MM
func IsValidMonth(monthStr string) (time.Time, bool) {
	month, err := time.Parse("2006-01", monthStr)
	return month, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// DateRange validates an inclusive from/to pair, appending failures to errs.
func DateRange(errs ValidationErrors, fromField, from, toField, to string) ValidationErrors {
	fromDate, fromOK := IsValidDate(from)
	if !fromOK {
		errs = append(errs, ValidationError{Field: fromField, Message: fromField + " must be in YYYY-MM-DD format"})
	}
	toDate, toOK := IsValidDate(to)
	if !toOK {
		errs = append(errs, ValidationError{Field: toField, Message: toField + " must be in YYYY-MM-DD format"})
	}
	if fromOK && toOK && toDate.Before(fromDate) {
		errs = append(errs, ValidationError{Field: toField, Message: toField + " must not be before " + fromField})
	}
	return errs
}
