// Package web renders the dashboard pages from embedded templates.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageTrade   = "trade"
	PageHistory = "history"
	PageLogin   = "login"
)

const Title = "Alpaca Trading Dashboard"

const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

type Flash struct {
	Kind string
	Text string
}

type Page struct {
	Title      string
	Active     string
	ShowLogout bool
	Flash      *Flash
	Data       any
}

// TradeForm is the trade page model. Option lists drive the select widgets.
type TradeForm struct {
	Symbol       string
	Qty          string
	Side         string
	Type         string
	TimeInForce  string
	Sides        []string
	Types        []string
	TimeInForces []string
}

// HistoryView carries one pre-rendered JSON block per order.
type HistoryView struct {
	Records []string
}

type Renderer struct {
	pages      map[string]*template.Template
	showLogout bool
}

func NewRenderer(showLogout bool) (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template), showLogout: showLogout}
	for _, name := range []string{PageTrade, PageHistory, PageLogin} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes into a buffer first so a template error never leaves a
// half-written page behind.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, p Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if p.Title == "" {
		p.Title = Title
	}
	if p.Active == "" {
		p.Active = name
	}
	p.ShowLogout = r.showLogout && name != PageLogin
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
