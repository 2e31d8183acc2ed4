package page

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/coursedesk/coursedesk-panel/internal/apperr"
	"github.com/coursedesk/coursedesk-panel/internal/model"
)

const recentActivityLimit = 5

type dashboardView struct {
	chrome
	TotalUsers       int
	TotalCourses     int
	TotalEnrollments int
	AdminUsers       int
	RecentActivity   []activityRow
	Error            string
}

type activityRow struct {
	UserName    string
	CourseTitle string
	Action      string
	Date        string
}

// DashboardPage shows platform totals and the most recent enrollments.
// The three backend lists are independent, so they load concurrently and
// join client-side by id.
func (p *Pages) DashboardPage(c *gin.Context) {
	var (
		users       []model.User
		courses     []model.Course
		enrollments []model.Enrollment
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) { users, err = p.api.Users.List(ctx); return })
	g.Go(func() (err error) { courses, err = p.api.Courses.List(ctx); return })
	g.Go(func() (err error) { enrollments, err = p.api.Enrollments.List(ctx); return })

	view := dashboardView{chrome: p.newChrome(c, "Dashboard", "/dashboard")}
	if err := g.Wait(); err != nil {
		view.Error = apperr.Message(err)
		c.HTML(http.StatusOK, "dashboard", view)
		return
	}

	view.TotalUsers = len(users)
	view.TotalCourses = len(courses)
	view.TotalEnrollments = len(enrollments)
	for _, u := range users {
		if u.Role == model.RoleAdmin {
			view.AdminUsers++
		}
	}
	view.RecentActivity = recentActivity(users, courses, enrollments)

	c.HTML(http.StatusOK, "dashboard", view)
}

// recentActivity joins the newest enrollments with user and course names.
// Enrollment ids are creation timestamps, so id order is recency order.
func recentActivity(users []model.User, courses []model.Course, enrollments []model.Enrollment) []activityRow {
	userNames := make(map[int64]string, len(users))
	for _, u := range users {
		userNames[u.ID] = u.Name
	}
	courseTitles := make(map[int64]string, len(courses))
	for _, co := range courses {
		courseTitles[co.ID] = co.Title
	}

	sorted := make([]model.Enrollment, len(enrollments))
	copy(sorted, enrollments)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })

	var rows []activityRow
	for _, e := range sorted {
		name, okU := userNames[e.UserID]
		title, okC := courseTitles[e.CourseID]
		if !okU || !okC {
			continue // dangling reference, dropped from the join
		}
		rows = append(rows, activityRow{
			UserName:    name,
			CourseTitle: title,
			Action:      "Enrolled",
			Date:        time.UnixMilli(e.ID).Format(model.AdmissionDateLayout),
		})
		if len(rows) == recentActivityLimit {
			break
		}
	}
	return rows
}
