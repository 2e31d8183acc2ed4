package service

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/coursedesk/coursedesk-panel/internal/apperr"
	"github.com/coursedesk/coursedesk-panel/internal/backend"
	"github.com/coursedesk/coursedesk-panel/internal/model"
	"github.com/coursedesk/coursedesk-panel/internal/session"
	"github.com/coursedesk/coursedesk-panel/internal/validation"
)

// AuthService implements login, registration, logout and role queries on
// top of the users resource and the session store. There is no in-process
// current-user singleton: the session slot is the only state, resolved per
// request.
type AuthService struct {
	users    *backend.UsersClient
	sessions session.Store
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *backend.UsersClient, sessions session.Store, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		log:      log.With().Str("component", "auth_service").Logger(),
	}
}

// Login matches email+password against the backend's user list and writes
// the matched user into the session slot.
//
// The backend stores plaintext passwords and exposes them on GET /users,
// so the comparison happens client-side in plaintext. That is the demo
// backend's contract, not a choice this service can fix; credentials
// should be hashed and verified server-side. The session slot at least
// never receives the password (Sanitized).
func (s *AuthService) Login(c *gin.Context, email, password string) (model.User, error) {
	if !validation.ValidateEmail(email) {
		return model.User{}, apperr.New(apperr.ErrValidation, "Please enter a valid email address")
	}
	if !validation.ValidatePassword(password) {
		return model.User{}, apperr.New(apperr.ErrValidation, "Password must be at least 6 characters long")
	}

	users, err := s.users.List(c.Request.Context())
	if err != nil {
		return model.User{}, err
	}

	for _, u := range users {
		if u.Email == email && u.Password == password {
			if err := s.sessions.Save(c, u.Sanitized()); err != nil {
				return model.User{}, err
			}
			s.log.Info().Int64("user_id", u.ID).Str("role", string(u.Role)).Msg("login")
			return u, nil
		}
	}

	return model.User{}, apperr.ErrInvalidCredentials
}

// Register validates the form, rejects duplicate emails, creates the user
// with a synthesized id and join date, and logs the new user in. On any
// failure the session slot is left untouched.
func (s *AuthService) Register(c *gin.Context, form model.RegisterForm) (model.User, error) {
	if errs := validation.ValidateUser(
		form.Name, form.Email, form.Password,
		form.Phone, form.EnrollNumber, form.Role,
	); len(errs) > 0 {
		return model.User{}, apperr.New(apperr.ErrValidation, strings.Join(errs, ", "))
	}
	role, _ := model.ParseRole(form.Role) // ValidateUser already gated this

	ctx := c.Request.Context()
	users, err := s.users.List(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.Email == form.Email {
			return model.User{}, apperr.ErrEmailTaken
		}
	}

	user := model.User{
		ID:              model.NextID(),
		Name:            validation.SanitizeInput(form.Name),
		Email:           form.Email,
		Password:        form.Password,
		Phone:           form.Phone,
		EnrollNumber:    form.EnrollNumber,
		Role:            role,
		DateOfAdmission: model.FormatAdmissionDate(time.Now()),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return model.User{}, err
	}

	// Registration doubles as login.
	if err := s.sessions.Save(c, created.Sanitized()); err != nil {
		return model.User{}, err
	}
	s.log.Info().Int64("user_id", created.ID).Msg("registered")
	return created, nil
}

// Logout clears the session slot. No backend call is involved.
func (s *AuthService) Logout(c *gin.Context) {
	if err := s.sessions.Clear(c); err != nil {
		s.log.Error().Err(err).Msg("clear session")
	}
}

// CurrentUser resolves the logged-in user from the request's session.
func (s *AuthService) CurrentUser(c *gin.Context) (model.User, bool) {
	return s.sessions.Load(c)
}

// IsAuthenticated reports whether a user is logged in.
func (s *AuthService) IsAuthenticated(c *gin.Context) bool {
	_, ok := s.sessions.Load(c)
	return ok
}

// IsAdmin reports whether the logged-in user is an admin.
func (s *AuthService) IsAdmin(c *gin.Context) bool {
	u, ok := s.sessions.Load(c)
	return ok && u.Role == model.RoleAdmin
}

// IsVisitor reports whether the logged-in user is a visitor.
func (s *AuthService) IsVisitor(c *gin.Context) bool {
	u, ok := s.sessions.Load(c)
	return ok && u.Role == model.RoleVisitor
}
