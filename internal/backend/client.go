// Package backend holds the stateless REST resource clients for the
// external course-enrollment backend. Each call is a single round trip:
// no retry, no backoff, no caching. Requests carry the caller's context,
// so an abandoned page load cancels its outstanding fetches.
package backend

import (
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/coursedesk/coursedesk-panel/internal/apperr"
)

// Client bundles the per-entity resource clients sharing one resty client.
type Client struct {
	Users       *UsersClient
	Courses     *CoursesClient
	Enrollments *EnrollmentsClient
}

// New creates resource clients bound to the backend base URL.
func New(baseURL string, log zerolog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json")

	log = log.With().Str("component", "backend").Logger()

	return &Client{
		Users:       &UsersClient{rc: rc, log: log},
		Courses:     &CoursesClient{rc: rc, log: log},
		Enrollments: &EnrollmentsClient{rc: rc, log: log},
	}
}

// fail translates a failed round trip into the error taxonomy. A nil
// response means the request itself never completed (network failure).
func fail(resp *resty.Response, err error, msg string) error {
	if err != nil {
		return apperr.New(apperr.ErrTransport, "Failed to connect to server")
	}
	switch resp.StatusCode() {
	case http.StatusNotFound:
		return apperr.New(apperr.ErrNotFound, msg)
	case http.StatusConflict:
		return apperr.New(apperr.ErrConflict, msg)
	default:
		return apperr.New(apperr.ErrTransport, msg)
	}
}
