package page

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursedesk/coursedesk-panel/internal/apperr"
	"github.com/coursedesk/coursedesk-panel/internal/model"
	"github.com/coursedesk/coursedesk-panel/internal/validation"
)

type loginView struct {
	chrome
	Error string
	Email string
}

// LoginPage renders the login form, bouncing already-authenticated users
// to their home page.
func (p *Pages) LoginPage(c *gin.Context) {
	if user, ok := p.auth.CurrentUser(c); ok {
		c.Redirect(http.StatusSeeOther, homePath(user.Role))
		return
	}
	p.renderLogin(c, loginView{})
}

// LoginSubmit handles the login form. Failures re-render the form with a
// single flattened error banner.
func (p *Pages) LoginSubmit(c *gin.Context) {
	var form model.LoginForm
	if msg, ok := validation.BindForm(c, &form); !ok {
		p.renderLogin(c, loginView{Error: msg})
		return
	}

	user, err := p.auth.Login(c, form.Email, form.Password)
	if err != nil {
		p.renderLogin(c, loginView{Error: apperr.Message(err), Email: form.Email})
		return
	}

	c.Redirect(http.StatusSeeOther, homePath(user.Role))
}

// Logout clears the session and returns to the login page.
func (p *Pages) Logout(c *gin.Context) {
	p.auth.Logout(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (p *Pages) renderLogin(c *gin.Context, view loginView) {
	view.chrome = p.newChrome(c, "Login", "")
	status := http.StatusOK
	if view.Error != "" {
		status = http.StatusUnprocessableEntity
	}
	c.HTML(status, "login", view)
}
