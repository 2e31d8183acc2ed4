package backend

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/coursedesk/coursedesk-panel/internal/model"
)

// CoursesClient wraps the /courses resource.
type CoursesClient struct {
	rc  *resty.Client
	log zerolog.Logger
}

// List fetches every course.
func (c *CoursesClient) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	resp, err := c.rc.R().SetContext(ctx).SetResult(&courses).Get("/courses")
	if err != nil || resp.IsError() {
		c.log.Error().Err(err).Int("status", statusOf(resp)).Msg("list courses")
		return nil, fail(resp, err, "Failed to fetch courses")
	}
	return courses, nil
}

// Get fetches a single course by id.
func (c *CoursesClient) Get(ctx context.Context, id int64) (model.Course, error) {
	var course model.Course
	resp, err := c.rc.R().SetContext(ctx).SetResult(&course).
		Get(fmt.Sprintf("/courses/%d", id))
	if err != nil || resp.IsError() {
		return model.Course{}, fail(resp, err, "Failed to fetch course")
	}
	return course, nil
}

// Create posts a new course, synthesizing the id when unset.
func (c *CoursesClient) Create(ctx context.Context, course model.Course) (model.Course, error) {
	if course.ID == 0 {
		course.ID = model.NextID()
	}

	var created model.Course
	resp, err := c.rc.R().SetContext(ctx).SetBody(course).SetResult(&created).
		Post("/courses")
	if err != nil || resp.IsError() {
		return model.Course{}, fail(resp, err, "Failed to create course")
	}
	return created, nil
}

// Update replaces a course record.
func (c *CoursesClient) Update(ctx context.Context, id int64, course model.Course) (model.Course, error) {
	var updated model.Course
	resp, err := c.rc.R().SetContext(ctx).SetBody(course).SetResult(&updated).
		Put(fmt.Sprintf("/courses/%d", id))
	if err != nil || resp.IsError() {
		return model.Course{}, fail(resp, err, "Failed to update course")
	}
	return updated, nil
}

// Delete removes a course record. Enrollments referencing it are left in
// place; joins drop them.
func (c *CoursesClient) Delete(ctx context.Context, id int64) error {
	resp, err := c.rc.R().SetContext(ctx).
		Delete(fmt.Sprintf("/courses/%d", id))
	if err != nil || resp.IsError() {
		return fail(resp, err, "Failed to delete course")
	}
	return nil
}
