package page

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/coursedesk/coursedesk-panel/internal/apperr"
	"github.com/coursedesk/coursedesk-panel/internal/model"
)

type publicView struct {
	chrome
	Courses []catalogRow
	Error   string
}

type catalogRow struct {
	model.Course
	Enrolled     bool
	EnrollmentID int64
}

// PublicPage shows the course catalog with enroll/unenroll controls for
// the current user.
func (p *Pages) PublicPage(c *gin.Context) {
	user, _ := p.auth.CurrentUser(c)

	var (
		courses     []model.Course
		enrollments []model.Enrollment
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) { courses, err = p.api.Courses.List(ctx); return })
	g.Go(func() (err error) { enrollments, err = p.api.Enrollments.List(ctx); return })

	view := publicView{chrome: p.newChrome(c, "Courses", "/public")}
	if err := g.Wait(); err != nil {
		view.Error = apperr.Message(err)
		c.HTML(http.StatusOK, "public", view)
		return
	}

	mine := make(map[int64]int64, len(enrollments)) // courseID → enrollmentID
	for _, e := range enrollments {
		if e.UserID == user.ID {
			mine[e.CourseID] = e.ID
		}
	}
	for _, co := range courses {
		eid, enrolled := mine[co.ID]
		view.Courses = append(view.Courses, catalogRow{Course: co, Enrolled: enrolled, EnrollmentID: eid})
	}

	c.HTML(http.StatusOK, "public", view)
}

// Enroll adds the current user to a course. The duplicate check lives in
// the enrollments client.
func (p *Pages) Enroll(c *gin.Context) {
	user, _ := p.auth.CurrentUser(c)

	courseID, err := strconv.ParseInt(c.PostForm("courseId"), 10, 64)
	if err != nil || courseID <= 0 {
		p.flashes.Error(c, "Invalid course id")
		p.redirectBack(c, "/public")
		return
	}

	if _, err := p.api.Enrollments.Create(c.Request.Context(), user.ID, courseID); err != nil {
		p.flashes.Error(c, apperr.Message(err))
	} else {
		p.flashes.Success(c, "Successfully enrolled in course")
	}
	p.redirectBack(c, "/public")
}

// Unenroll removes an enrollment. A visitor may only remove their own;
// admins may remove any.
func (p *Pages) Unenroll(c *gin.Context) {
	user, _ := p.auth.CurrentUser(c)

	id, ok := pathID(c)
	if !ok {
		p.flashes.Error(c, "Invalid enrollment id")
		p.redirectBack(c, "/public")
		return
	}

	ctx := c.Request.Context()
	enrollments, err := p.api.Enrollments.List(ctx)
	if err != nil {
		p.flashes.Error(c, apperr.Message(err))
		p.redirectBack(c, "/public")
		return
	}

	owned := false
	for _, e := range enrollments {
		if e.ID == id {
			owned = e.UserID == user.ID
			break
		}
	}
	if !owned && user.Role != model.RoleAdmin {
		p.flashes.Error(c, "You can only manage your own enrollments")
		p.redirectBack(c, "/public")
		return
	}

	if err := p.api.Enrollments.Delete(ctx, id); err != nil {
		p.flashes.Error(c, apperr.Message(err))
	} else {
		p.flashes.Success(c, "Successfully unenrolled from course")
	}
	p.redirectBack(c, "/public")
}
