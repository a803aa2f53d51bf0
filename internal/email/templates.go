package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
)

//go:embed templates/*.html
var templateFS embed.FS

// WelcomeData feeds templates/welcome.html.
type WelcomeData struct {
	BrandName      string
	SiteURL        string
	Email          string
	UnsubscribeURL string
}

// Renderer turns template data into ready-to-send messages.
type Renderer struct {
	tmpl      *template.Template
	brandName string
	siteURL   string
}

func NewRenderer(brandName, siteURL string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, brandName: brandName, siteURL: siteURL}, nil
}

// Welcome renders the welcome email addressed to to.
func (r *Renderer) Welcome(to string) (Message, error) {
	data := WelcomeData{
		BrandName:      r.brandName,
		SiteURL:        r.siteURL,
		Email:          to,
		UnsubscribeURL: r.siteURL + "/unsubscribe?email=" + url.QueryEscape(to),
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "welcome.html", data); err != nil {
		return Message{}, fmt.Errorf("render welcome email: %w", err)
	}

	return Message{
		To:      to,
		Subject: fmt.Sprintf("Welcome to %s", r.brandName),
		HTML:    buf.String(),
	}, nil
}
