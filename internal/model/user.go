package model

import "time"

// AdmissionDateLayout is the display format the backend stores join dates
// in, e.g. "28 Aug 2026".
const AdmissionDateLayout = "02 Jan 2006"

// User represents an account in the course-enrollment backend.
//
// The backend stores the password in plaintext and returns it on every
// list/get. That is the demo backend contract, not something the
// panel can change. The panel never persists it: see Sanitized.
type User struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password,omitempty"`
	Phone           string `json:"phone"`
	EnrollNumber    string `json:"enrollNumber"`
	Role            Role   `json:"role"`
	DateOfAdmission string `json:"dateOfAdmission"`
}

// Sanitized returns a copy safe to serialize into the session slot.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// NextID synthesizes an id in the backend's id space: wall-clock
// milliseconds. Not collision-safe under concurrent creation; the ids
// already stored by the backend share that property.
func NextID() int64 {
	return time.Now().UnixMilli()
}

// FormatAdmissionDate renders a join date for display and storage.
func FormatAdmissionDate(t time.Time) string {
	return t.Format(AdmissionDateLayout)
}

// LoginForm is the login page payload.
type LoginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// RegisterForm is the registration page payload. Field shapes are checked
// by validation.ValidateUser, which aggregates errors the way the page
// displays them; binding only asserts presence.
type RegisterForm struct {
	Name         string `form:"name" binding:"required"`
	Email        string `form:"email" binding:"required"`
	Password     string `form:"password" binding:"required"`
	Phone        string `form:"phone" binding:"required"`
	EnrollNumber string `form:"enrollNumber" binding:"required"`
	Role         string `form:"role" binding:"required"`
}

// UserForm is the admin create/edit payload. Password is optional on edit
// (blank keeps the stored one).
type UserForm struct {
	Name         string `form:"name" binding:"required"`
	Email        string `form:"email" binding:"required"`
	Password     string `form:"password"`
	Phone        string `form:"phone" binding:"required"`
	EnrollNumber string `form:"enrollNumber" binding:"required"`
	Role         string `form:"role" binding:"required"`
}
