package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/coursedesk/coursedesk-panel/internal/model"
)

// UsersClient wraps the /users resource.
type UsersClient struct {
	rc  *resty.Client
	log zerolog.Logger
}

// List fetches every user. The backend offers no pagination.
func (c *UsersClient) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	resp, err := c.rc.R().SetContext(ctx).SetResult(&users).Get("/users")
	if err != nil || resp.IsError() {
		c.log.Error().Err(err).Int("status", statusOf(resp)).Msg("list users")
		return nil, fail(resp, err, "Failed to fetch users")
	}
	return users, nil
}

// Get fetches a single user by id.
func (c *UsersClient) Get(ctx context.Context, id int64) (model.User, error) {
	var user model.User
	resp, err := c.rc.R().SetContext(ctx).SetResult(&user).
		Get(fmt.Sprintf("/users/%d", id))
	if err != nil || resp.IsError() {
		return model.User{}, fail(resp, err, "Failed to fetch user")
	}
	return user, nil
}

// Create posts a new user. A zero ID and empty DateOfAdmission are filled
// in here so admin-created users share the registration id space.
func (c *UsersClient) Create(ctx context.Context, user model.User) (model.User, error) {
	if user.ID == 0 {
		user.ID = model.NextID()
	}
	if user.DateOfAdmission == "" {
		user.DateOfAdmission = model.FormatAdmissionDate(time.Now())
	}

	var created model.User
	resp, err := c.rc.R().SetContext(ctx).SetBody(user).SetResult(&created).
		Post("/users")
	if err != nil || resp.IsError() {
		c.log.Error().Err(err).Int("status", statusOf(resp)).Msg("create user")
		return model.User{}, fail(resp, err, "Failed to create user")
	}
	return created, nil
}

// Update replaces a user record.
func (c *UsersClient) Update(ctx context.Context, id int64, user model.User) (model.User, error) {
	var updated model.User
	resp, err := c.rc.R().SetContext(ctx).SetBody(user).SetResult(&updated).
		Put(fmt.Sprintf("/users/%d", id))
	if err != nil || resp.IsError() {
		return model.User{}, fail(resp, err, "Failed to update user")
	}
	return updated, nil
}

// Delete removes a user record.
func (c *UsersClient) Delete(ctx context.Context, id int64) error {
	resp, err := c.rc.R().SetContext(ctx).
		Delete(fmt.Sprintf("/users/%d", id))
	if err != nil || resp.IsError() {
		return fail(resp, err, "Failed to delete user")
	}
	return nil
}

func statusOf(resp *resty.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode()
}
