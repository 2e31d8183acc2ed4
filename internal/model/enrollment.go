package model

// Enrollment joins a user to a course. Enrollments form a set over
// (UserID, CourseID): the backend offers no uniqueness constraint, so the
// client enforces it with a read-before-write check (see backend package).
type Enrollment struct {
	ID       int64 `json:"id"`
	UserID   int64 `json:"userId"`
	CourseID int64 `json:"courseId"`
}
