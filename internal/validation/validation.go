// Package validation holds the field-level shape checks the panel runs
// before any form reaches the backend, plus the Gin binding translator.
package validation

import (
	"regexp"
	"strings"

	"github.com/coursedesk/coursedesk-panel/internal/model"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)
)

// ValidateEmail checks the email has a local part, a domain and a dot in
// the domain. Deliberately loose beyond that.
func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidatePassword requires at least 6 characters.
func ValidatePassword(password string) bool {
	return len(password) >= 6
}

// ValidatePhone accepts digits, spaces, dashes, plus signs and parentheses,
// at least 10 characters total (so "+1 (555) 123-4567" passes).
func ValidatePhone(phone string) bool {
	return len(phone) >= 10 && phoneRe.MatchString(phone)
}

// ValidateEnrollNumber requires at least 10 characters.
func ValidateEnrollNumber(enrollNumber string) bool {
	return len(enrollNumber) >= 10
}

// ValidateUser aggregates shape errors for a registration or admin user
// form. An empty slice means the form passes. Messages are banner text.
func ValidateUser(name, email, password, phone, enrollNumber, role string) []string {
	var errs []string

	if len(strings.TrimSpace(name)) < 2 {
		errs = append(errs, "Name must be at least 2 characters long")
	}
	if !ValidateEmail(email) {
		errs = append(errs, "Please enter a valid email address")
	}
	if !ValidatePassword(password) {
		errs = append(errs, "Password must be at least 6 characters long")
	}
	if !ValidatePhone(phone) {
		errs = append(errs, "Please enter a valid phone number")
	}
	if !ValidateEnrollNumber(enrollNumber) {
		errs = append(errs, "Enrollment number must be at least 10 characters long")
	}
	if _, err := model.ParseRole(role); err != nil {
		errs = append(errs, "Please select a valid role")
	}

	return errs
}

// ValidateCourse aggregates shape errors for a course form.
func ValidateCourse(form model.CourseForm) []string {
	var errs []string

	if len(strings.TrimSpace(form.Title)) < 3 {
		errs = append(errs, "Course title must be at least 3 characters long")
	}
	if len(strings.TrimSpace(form.Description)) < 10 {
		errs = append(errs, "Course description must be at least 10 characters long")
	}
	if strings.TrimSpace(form.StartDate) == "" {
		errs = append(errs, "Please select a start date")
	}
	if strings.TrimSpace(form.Duration) == "" {
		errs = append(errs, "Please enter course duration")
	}

	return errs
}

// SanitizeInput trims whitespace and strips angle brackets from free-text
// input before it is echoed back into a page.
func SanitizeInput(input string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(strings.TrimSpace(input))
}
