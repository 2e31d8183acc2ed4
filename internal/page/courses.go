package page

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/coursedesk/coursedesk-panel/internal/apperr"
	"github.com/coursedesk/coursedesk-panel/internal/model"
	"github.com/coursedesk/coursedesk-panel/internal/validation"
)

type coursesView struct {
	chrome
	Courses []courseRow
	Error   string
}

type courseRow struct {
	model.Course
	EnrollmentCount int
}

// CoursesPage lists courses with their enrollment counts plus CRUD forms.
// Courses and enrollments load concurrently and join by course id.
func (p *Pages) CoursesPage(c *gin.Context) {
	var (
		courses     []model.Course
		enrollments []model.Enrollment
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) { courses, err = p.api.Courses.List(ctx); return })
	g.Go(func() (err error) { enrollments, err = p.api.Enrollments.List(ctx); return })

	view := coursesView{chrome: p.newChrome(c, "Courses", "/courses")}
	if err := g.Wait(); err != nil {
		view.Error = apperr.Message(err)
		c.HTML(http.StatusOK, "courses", view)
		return
	}

	counts := make(map[int64]int, len(courses))
	for _, e := range enrollments {
		counts[e.CourseID]++
	}
	for _, co := range courses {
		view.Courses = append(view.Courses, courseRow{Course: co, EnrollmentCount: counts[co.ID]})
	}

	c.HTML(http.StatusOK, "courses", view)
}

// CreateCourse handles the admin create-course form.
func (p *Pages) CreateCourse(c *gin.Context) {
	var form model.CourseForm
	if msg, ok := validation.BindForm(c, &form); !ok {
		p.flashes.Error(c, msg)
		p.redirectBack(c, "/courses")
		return
	}

	if errs := validation.ValidateCourse(form); len(errs) > 0 {
		p.flashes.Error(c, strings.Join(errs, ", "))
		p.redirectBack(c, "/courses")
		return
	}

	_, err := p.api.Courses.Create(c.Request.Context(), model.Course{
		Title:       validation.SanitizeInput(form.Title),
		Description: validation.SanitizeInput(form.Description),
		StartDate:   form.StartDate,
		Duration:    form.Duration,
	})
	if err != nil {
		p.flashes.Error(c, apperr.Message(err))
	} else {
		p.flashes.Success(c, "Course created successfully")
	}
	p.redirectBack(c, "/courses")
}

// UpdateCourse handles the admin edit-course form.
func (p *Pages) UpdateCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		p.flashes.Error(c, "Invalid course id")
		p.redirectBack(c, "/courses")
		return
	}

	var form model.CourseForm
	if msg, ok := validation.BindForm(c, &form); !ok {
		p.flashes.Error(c, msg)
		p.redirectBack(c, "/courses")
		return
	}

	if errs := validation.ValidateCourse(form); len(errs) > 0 {
		p.flashes.Error(c, strings.Join(errs, ", "))
		p.redirectBack(c, "/courses")
		return
	}

	_, err := p.api.Courses.Update(c.Request.Context(), id, model.Course{
		ID:          id,
		Title:       validation.SanitizeInput(form.Title),
		Description: validation.SanitizeInput(form.Description),
		StartDate:   form.StartDate,
		Duration:    form.Duration,
	})
	if err != nil {
		p.flashes.Error(c, apperr.Message(err))
	} else {
		p.flashes.Success(c, "Course updated successfully")
	}
	p.redirectBack(c, "/courses")
}

// DeleteCourse removes a course. Its enrollments are left dangling; joins
// simply drop them.
func (p *Pages) DeleteCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		p.flashes.Error(c, "Invalid course id")
		p.redirectBack(c, "/courses")
		return
	}

	if err := p.api.Courses.Delete(c.Request.Context(), id); err != nil {
		p.flashes.Error(c, apperr.Message(err))
	} else {
		p.flashes.Success(c, "Course deleted successfully")
	}
	p.redirectBack(c, "/courses")
}
