// Package view renders the admin pages and holds the admin form state machine.
package view

import (
	"embed"
	"html/template"

	catalogapp "github.com/edusite/backend/internal/application/catalog"
	"github.com/edusite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin/render"
	"github.com/shopspring/decimal"
)

// Template names
const (
	AdminTemplate = "admin.html"
	LoginTemplate = "login.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// AdminPage is the data of the admin page
type AdminPage struct {
	Products []catalogapp.ProductResponse
	Draft    Draft
	Error    string
	Details  []dto.ValidationDetail
	Username string
}

// LoginPage is the data of the login page
type LoginPage struct {
	Username string
	Error    string
}

// Renderer renders the embedded templates. It implements gin's render.HTMLRender.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"price": FormatPrice,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: tmpl}, nil
}

// Instance implements render.HTMLRender
func (r *Renderer) Instance(name string, data any) render.Render {
	return render.HTML{
		Template: r.templates,
		Name:     name,
		Data:     data,
	}
}

// FormatPrice shows a price with exactly two decimals
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}
