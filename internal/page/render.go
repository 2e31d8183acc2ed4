package page

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/coursedesk/coursedesk-panel/internal/model"
	"github.com/coursedesk/coursedesk-panel/internal/session"
)

//go:embed templates/*.html
var tmplFS embed.FS

// Templates parses the embedded page shells. The markup is deliberately
// thin; presentation is not this repo's concern.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(tmplFS, "templates/*.html"))
}

// chrome is the view state every page shares: title, active nav entry,
// the session user and any queued banners.
type chrome struct {
	Title   string
	Active  string
	User    *model.User
	Flashes []session.Flash
}

// newChrome assembles the shared chrome, consuming queued flashes.
func (p *Pages) newChrome(c *gin.Context, title, active string) chrome {
	ch := chrome{
		Title:   title,
		Active:  active,
		Flashes: p.flashes.Take(c),
	}
	if user, ok := p.auth.CurrentUser(c); ok {
		ch.User = &user
	}
	return ch
}
