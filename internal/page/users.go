package page

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/coursedesk/coursedesk-panel/internal/apperr"
	"github.com/coursedesk/coursedesk-panel/internal/model"
	"github.com/coursedesk/coursedesk-panel/internal/validation"
)

type usersView struct {
	chrome
	Users []model.User
	Query string
	Role  string
	Error string
}

// UsersPage lists accounts with create/edit/delete forms, narrowed by the
// search box (name/email/enrollment number) and the role select. Both ride
// query params, so a filtered view is a plain GET.
func (p *Pages) UsersPage(c *gin.Context) {
	view := usersView{
		chrome: p.newChrome(c, "Users", "/users"),
		Query:  c.Query("q"),
		Role:   c.Query("role"),
	}

	users, err := p.api.Users.List(c.Request.Context())
	if err != nil {
		view.Error = apperr.Message(err)
	}
	view.Users = filterUsers(users, view.Query, view.Role)

	c.HTML(http.StatusOK, "users", view)
}

// filterUsers keeps users whose name, email or enrollment number contains
// the search term, case-insensitive, and whose role matches the filter.
// An empty or "all" role matches every role.
func filterUsers(users []model.User, query, role string) []model.User {
	query = strings.ToLower(query)

	var out []model.User
	for _, u := range users {
		matchesSearch := query == "" ||
			strings.Contains(strings.ToLower(u.Name), query) ||
			strings.Contains(strings.ToLower(u.Email), query) ||
			strings.Contains(strings.ToLower(u.EnrollNumber), query)
		matchesRole := role == "" || role == "all" || string(u.Role) == role

		if matchesSearch && matchesRole {
			out = append(out, u)
		}
	}
	return out
}

// CreateUser handles the admin create-user form.
func (p *Pages) CreateUser(c *gin.Context) {
	var form model.UserForm
	if msg, ok := validation.BindForm(c, &form); !ok {
		p.flashes.Error(c, msg)
		p.redirectBack(c, "/users")
		return
	}

	if errs := validation.ValidateUser(
		form.Name, form.Email, form.Password,
		form.Phone, form.EnrollNumber, form.Role,
	); len(errs) > 0 {
		p.flashes.Error(c, strings.Join(errs, ", "))
		p.redirectBack(c, "/users")
		return
	}
	role, _ := model.ParseRole(form.Role)

	ctx := c.Request.Context()

	// Email is the login key; keep it unique even on the admin path.
	existing, err := p.api.Users.List(ctx)
	if err != nil {
		p.flashes.Error(c, apperr.Message(err))
		p.redirectBack(c, "/users")
		return
	}
	for _, u := range existing {
		if u.Email == form.Email {
			p.flashes.Error(c, apperr.Message(apperr.ErrEmailTaken))
			p.redirectBack(c, "/users")
			return
		}
	}

	_, err = p.api.Users.Create(ctx, model.User{
		Name:         validation.SanitizeInput(form.Name),
		Email:        form.Email,
		Password:     form.Password,
		Phone:        form.Phone,
		EnrollNumber: form.EnrollNumber,
		Role:         role,
	})
	if err != nil {
		p.flashes.Error(c, apperr.Message(err))
	} else {
		p.flashes.Success(c, "User created successfully")
	}
	p.redirectBack(c, "/users")
}

// UpdateUser handles the admin edit-user form. A blank password keeps the
// stored one.
func (p *Pages) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		p.flashes.Error(c, "Invalid user id")
		p.redirectBack(c, "/users")
		return
	}

	var form model.UserForm
	if msg, ok := validation.BindForm(c, &form); !ok {
		p.flashes.Error(c, msg)
		p.redirectBack(c, "/users")
		return
	}

	ctx := c.Request.Context()
	current, err := p.api.Users.Get(ctx, id)
	if err != nil {
		p.flashes.Error(c, apperr.Message(err))
		p.redirectBack(c, "/users")
		return
	}

	password := form.Password
	if password == "" {
		password = current.Password
	}

	if errs := validation.ValidateUser(
		form.Name, form.Email, password,
		form.Phone, form.EnrollNumber, form.Role,
	); len(errs) > 0 {
		p.flashes.Error(c, strings.Join(errs, ", "))
		p.redirectBack(c, "/users")
		return
	}
	role, _ := model.ParseRole(form.Role)

	_, err = p.api.Users.Update(ctx, id, model.User{
		ID:              id,
		Name:            validation.SanitizeInput(form.Name),
		Email:           form.Email,
		Password:        password,
		Phone:           form.Phone,
		EnrollNumber:    form.EnrollNumber,
		Role:            role,
		DateOfAdmission: current.DateOfAdmission,
	})
	if err != nil {
		p.flashes.Error(c, apperr.Message(err))
	} else {
		p.flashes.Success(c, "User updated successfully")
	}
	p.redirectBack(c, "/users")
}

// DeleteUser removes an account.
func (p *Pages) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		p.flashes.Error(c, "Invalid user id")
		p.redirectBack(c, "/users")
		return
	}

	if err := p.api.Users.Delete(c.Request.Context(), id); err != nil {
		p.flashes.Error(c, apperr.Message(err))
	} else {
		p.flashes.Success(c, "User deleted successfully")
	}
	p.redirectBack(c, "/users")
}
