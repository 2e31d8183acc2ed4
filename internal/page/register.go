package page

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursedesk/coursedesk-panel/internal/apperr"
	"github.com/coursedesk/coursedesk-panel/internal/model"
	"github.com/coursedesk/coursedesk-panel/internal/validation"
)

type registerView struct {
	chrome
	Error string
	Form  model.RegisterForm
}

// RegisterPage renders the registration form.
func (p *Pages) RegisterPage(c *gin.Context) {
	if user, ok := p.auth.CurrentUser(c); ok {
		c.Redirect(http.StatusSeeOther, homePath(user.Role))
		return
	}
	p.renderRegister(c, registerView{})
}

// RegisterSubmit handles the registration form. Success is an implicit
// login; the new user lands on their role's home page.
func (p *Pages) RegisterSubmit(c *gin.Context) {
	var form model.RegisterForm
	if msg, ok := validation.BindForm(c, &form); !ok {
		p.renderRegister(c, registerView{Error: msg})
		return
	}

	user, err := p.auth.Register(c, form)
	if err != nil {
		form.Password = ""
		p.renderRegister(c, registerView{Error: apperr.Message(err), Form: form})
		return
	}

	p.flashes.Success(c, "Account created successfully")
	c.Redirect(http.StatusSeeOther, homePath(user.Role))
}

func (p *Pages) renderRegister(c *gin.Context, view registerView) {
	view.chrome = p.newChrome(c, "Register", "")
	status := http.StatusOK
	if view.Error != "" {
		status = http.StatusUnprocessableEntity
	}
	c.HTML(status, "register", view)
}
