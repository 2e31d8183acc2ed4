package backend

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/coursedesk/coursedesk-panel/internal/apperr"
	"github.com/coursedesk/coursedesk-panel/internal/model"
)

// EnrollmentsClient wraps the /enrollments resource.
type EnrollmentsClient struct {
	rc  *resty.Client
	log zerolog.Logger
}

// List fetches every enrollment.
func (c *EnrollmentsClient) List(ctx context.Context) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	resp, err := c.rc.R().SetContext(ctx).SetResult(&enrollments).Get("/enrollments")
	if err != nil || resp.IsError() {
		c.log.Error().Err(err).Int("status", statusOf(resp)).Msg("list enrollments")
		return nil, fail(resp, err, "Failed to fetch enrollments")
	}
	return enrollments, nil
}

// Create enrolls a user in a course. The (user, course) pair is checked
// against the full enrollment list first; the backend has no uniqueness
// constraint, so two concurrent callers can still both pass the check.
// Closing that race needs a constraint on the backend side.
func (c *EnrollmentsClient) Create(ctx context.Context, userID, courseID int64) (model.Enrollment, error) {
	existing, err := c.List(ctx)
	if err != nil {
		return model.Enrollment{}, err
	}
	for _, e := range existing {
		if e.UserID == userID && e.CourseID == courseID {
			return model.Enrollment{}, apperr.ErrAlreadyEnrolled
		}
	}

	enrollment := model.Enrollment{
		ID:       model.NextID(),
		UserID:   userID,
		CourseID: courseID,
	}

	var created model.Enrollment
	resp, err := c.rc.R().SetContext(ctx).SetBody(enrollment).SetResult(&created).
		Post("/enrollments")
	if err != nil || resp.IsError() {
		return model.Enrollment{}, fail(resp, err, "Failed to create enrollment")
	}
	return created, nil
}

// Delete removes an enrollment by id.
func (c *EnrollmentsClient) Delete(ctx context.Context, id int64) error {
	resp, err := c.rc.R().SetContext(ctx).
		Delete(fmt.Sprintf("/enrollments/%d", id))
	if err != nil || resp.IsError() {
		return fail(resp, err, "Failed to delete enrollment")
	}
	return nil
}

// ForUser returns the user's enrollments, scanning the full list.
func (c *EnrollmentsClient) ForUser(ctx context.Context, userID int64) ([]model.Enrollment, error) {
	all, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	var mine []model.Enrollment
	for _, e := range all {
		if e.UserID == userID {
			mine = append(mine, e)
		}
	}
	return mine, nil
}
