// Package views holds the HTML pages of the registration site.
package views

import (
	"embed"
	"html/template"

	"celerium-registration/internal/app/flow"
	"celerium-registration/internal/domain/enrollment"
)

//go:embed templates/*.html
var files embed.FS

const Index = "index.html"

// Page is the data every page template receives.
type Page struct {
	flow.View
	Form        enrollment.Submission
	Options     []enrollment.PricingOption
	CustomPrice int64
	CSRFField   template.HTML
}

// NewPage wraps a flow view with what the templates need around it.
func NewPage(view flow.View, csrfField template.HTML) Page {
	p := Page{
		View:        view,
		Options:     enrollment.PricingTable(),
		CustomPrice: enrollment.CustomPlanPrice,
		CSRFField:   csrfField,
	}
	if view.Input != nil {
		p.Form = *view.Input
	} else {
		p.Form.Frequency = "1"
	}
	return p
}

// Load parses the embedded templates.
func Load() *template.Template {
	return template.Must(template.New("").ParseFS(files, "templates/*.html"))
}
