package page

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/coursedesk/coursedesk-panel/internal/apperr"
	"github.com/coursedesk/coursedesk-panel/internal/model"
)

type myCoursesView struct {
	chrome
	Courses []enrolledRow
	Error   string
}

type enrolledRow struct {
	model.Course
	EnrollmentID int64
}

// MyCoursesPage shows the current user's enrollments joined with course
// data. Enrollments pointing at deleted courses are dropped from the join.
func (p *Pages) MyCoursesPage(c *gin.Context) {
	user, _ := p.auth.CurrentUser(c)

	var (
		courses     []model.Course
		enrollments []model.Enrollment
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) { courses, err = p.api.Courses.List(ctx); return })
	g.Go(func() (err error) { enrollments, err = p.api.Enrollments.ForUser(ctx, user.ID); return })

	view := myCoursesView{chrome: p.newChrome(c, "My Courses", "/my-courses")}
	if err := g.Wait(); err != nil {
		view.Error = apperr.Message(err)
		c.HTML(http.StatusOK, "my_courses", view)
		return
	}

	byID := make(map[int64]model.Course, len(courses))
	for _, co := range courses {
		byID[co.ID] = co
	}
	for _, e := range enrollments {
		if co, ok := byID[e.CourseID]; ok {
			view.Courses = append(view.Courses, enrolledRow{Course: co, EnrollmentID: e.ID})
		}
	}

	c.HTML(http.StatusOK, "my_courses", view)
}
