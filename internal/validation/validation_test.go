package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coursedesk/coursedesk-panel/internal/model"
)

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"user.name+tag@sub.domain.org", true},
		{"a@b", false},
		{"@b.com", false},
		{"a@b.c", true}, // loose on purpose: only local, domain and a dot are checked
		{"a b@c.com", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidateEmail(tc.email), "email %q", tc.email)
	}
}

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"+1 (555) 123-4567", true},
		{"0812345678", true},
		{"123-456-7890", true},
		{"12345", false},      // too short
		{"abcdefghij", false}, // letters rejected
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidatePhone(tc.phone), "phone %q", tc.phone)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.False(t, ValidatePassword("12345"))
	assert.True(t, ValidatePassword("123456"))
}

func TestValidateEnrollNumber(t *testing.T) {
	assert.False(t, ValidateEnrollNumber("123456789"))
	assert.True(t, ValidateEnrollNumber("1234567890"))
}

func TestValidateUserAggregatesErrors(t *testing.T) {
	errs := ValidateUser("x", "not-an-email", "123", "12", "123", "wizard")
	assert.Len(t, errs, 6)
	assert.Contains(t, errs, "Please enter a valid email address")
	assert.Contains(t, errs, "Please select a valid role")

	errs = ValidateUser("Jane Doe", "jane@example.com", "secret1", "+1 (555) 123-4567", "ENR2026000001", "visitor")
	assert.Empty(t, errs)
}

func TestValidateCourse(t *testing.T) {
	errs := ValidateCourse(model.CourseForm{Title: "Go", Description: "short", StartDate: "", Duration: ""})
	assert.Len(t, errs, 4)

	errs = ValidateCourse(model.CourseForm{
		Title:       "Intro to Go",
		Description: "Learn Go from first principles.",
		StartDate:   "2026-09-01",
		Duration:    "8 weeks",
	})
	assert.Empty(t, errs)
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", SanitizeInput("  <script>alert(1)</script> "))
	assert.Equal(t, "plain", SanitizeInput("plain"))
}
