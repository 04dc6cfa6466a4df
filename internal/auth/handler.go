package auth

import (
	"log/slog"
	"net/http"
	"time"

	"paper-dashboard/internal/web"
)

type Handler struct {
	svc   *Service
	views *web.Renderer
}

func NewHandler(svc *Service, views *web.Renderer) *Handler {
	return &Handler{svc: svc, views: views}
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, nil)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, &web.Flash{Kind: web.FlashError, Text: "invalid form"})
		return
	}
	token, err := h.svc.Login(r.PostForm.Get("password"))
	if err != nil {
		slog.Warn("dashboard login failed", "remote", r.RemoteAddr)
		h.render(w, r, http.StatusUnauthorized, &web.Flash{Kind: web.FlashError, Text: err.Error()})
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.svc.TTL() / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, flash *web.Flash) {
	if err := h.views.Render(w, status, web.PageLogin, web.Page{Flash: flash}); err != nil {
		slog.Error("render page", "page", web.PageLogin, "path", r.URL.Path, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
