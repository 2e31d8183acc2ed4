package model

// Course represents a course offered on the platform.
type Course struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	Duration    string `json:"duration"`
}

// CourseForm is the admin create/edit payload for a course.
type CourseForm struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required"`
	StartDate   string `form:"startDate" binding:"required"`
	Duration    string `form:"duration" binding:"required"`
}
