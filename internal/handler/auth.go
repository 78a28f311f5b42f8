// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP handlers of the web console. Each
// request drives a fresh console view against the backend and renders the
// resulting state.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/mileusna/useragent"

	"github.com/olegiv/blogadmin/internal/api"
	"github.com/olegiv/blogadmin/internal/console"
	"github.com/olegiv/blogadmin/internal/i18n"
	"github.com/olegiv/blogadmin/internal/middleware"
	"github.com/olegiv/blogadmin/internal/model"
	"github.com/olegiv/blogadmin/internal/render"
	"github.com/olegiv/blogadmin/internal/session"
)

// loginPage is the view model of auth/login.
type loginPage struct {
	Mode     string
	Register bool
	Username string
}

// AuthHandler handles login, registration, logout and the UI language switch.
type AuthHandler struct {
	backend         console.Backend
	sessions        console.SessionProvider
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
	logger          *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. lp may be nil to disable lockout.
func NewAuthHandler(b console.Backend, sm *scs.SessionManager, renderer *render.Renderer, lp *middleware.LoginProtection, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		backend:         b,
		sessions:        session.NewStore(sm),
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
		logger:          logger,
	}
}

// LoginForm renders the login form, or the register form for ?mode=register.
// Already logged-in administrators go straight to the admin view.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.Load(r.Context()); ok {
		http.Redirect(w, r, console.PathAdmin, http.StatusSeeOther)
		return
	}
	h.renderForm(w, r, http.StatusOK, console.ParseMode(r.URL.Query().Get("mode")), "", "")
}

// RegisterForm renders the form in register mode.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.Load(r.Context()); ok {
		http.Redirect(w, r, console.PathAdmin, http.StatusSeeOther)
		return
	}
	h.renderForm(w, r, http.StatusOK, console.ModeRegister, "", "")
}

// Login handles POST /login in the posted mode. On success the session is
// saved and the browser is sent to the admin view; on failure the form is
// shown again with the banner and the username kept.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLang(r)

	if err := r.ParseForm(); err != nil {
		h.renderForm(w, r, http.StatusBadRequest, console.ModeLogin, "", i18n.T(lang, "login failed"))
		return
	}

	mode := console.ParseMode(r.PostFormValue("mode"))
	creds := model.Credentials{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	if h.loginProtection != nil && creds.Username != "" {
		if locked, remaining := h.loginProtection.IsLocked(creds.Username); locked {
			h.logger.WarnContext(r.Context(), "auth attempt on locked account",
				append(clientAttrs(r), "username", creds.Username, "remaining", remaining.String())...)
			h.renderForm(w, r, http.StatusTooManyRequests, mode, creds.Username, i18n.T(lang, "error.too_many_attempts"))
			return
		}
	}

	view := console.NewLoginView(h.backend, h.sessions, h.logger)
	view.Mode = mode
	if err := view.Submit(r.Context(), creds); err != nil {
		h.recordFailure(r, creds.Username, err)
		h.renderForm(w, r, http.StatusOK, mode, creds.Username, i18n.T(lang, view.Error))
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccess(creds.Username)
	}
	h.logger.InfoContext(r.Context(), "admin "+mode.String(),
		append(clientAttrs(r), "username", creds.Username)...)

	http.Redirect(w, r, view.Redirect, http.StatusSeeOther)
}

// recordFailure counts rejected credentials towards the lockout. Transport
// faults are not the user's doing and are not counted.
func (h *AuthHandler) recordFailure(r *http.Request, username string, err error) {
	var apiErr *api.Error
	if h.loginProtection == nil || !errors.As(err, &apiErr) {
		return
	}
	if locked, d := h.loginProtection.RecordFailure(username); locked {
		h.logger.WarnContext(r.Context(), "auth account locked",
			append(clientAttrs(r), "username", username, "duration", d.String())...)
	}
}

// Logout clears the session and redirects to the login form.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s, _ := h.sessions.Load(r.Context())

	view := console.NewAdminView(h.backend, h.sessions, h.logger)
	if err := view.Logout(r.Context()); err != nil {
		logAndInternalError(w, r, "failed to clear session", "error", err)
		return
	}

	h.logger.InfoContext(r.Context(), "admin logged out",
		append(clientAttrs(r), "admin_id", s.AdminID)...)
	http.Redirect(w, r, view.Snapshot().Redirect, http.StatusSeeOther)
}

// SetLanguage stores the chosen UI language and returns to the page the
// form was posted from.
func (h *AuthHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	back := localPath(r.PostFormValue("return"), console.PathAdmin)
	lang := r.PostFormValue("lang")
	if !i18n.IsSupported(lang) {
		flashError(w, r, h.renderer, back, "unsupported language")
		return
	}

	h.sessionManager.Put(r.Context(), middleware.SessionKeyLang, lang)
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (h *AuthHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, mode console.Mode, username, banner string) {
	lang := middleware.GetLang(r)
	title := i18n.T(lang, "login.title")
	if mode == console.ModeRegister {
		title = i18n.T(lang, "register.title")
	}

	err := h.renderer.RenderStatus(w, r, status, templateLogin, render.TemplateData{
		Title: title,
		Lang:  lang,
		Error: banner,
		Data: loginPage{
			Mode:     mode.String(),
			Register: mode == console.ModeRegister,
			Username: username,
		},
	})
	if err != nil {
		logAndInternalError(w, r, "failed to render template", "template", templateLogin, "error", err)
	}
}

// clientAttrs returns log attributes describing the requesting client.
func clientAttrs(r *http.Request) []any {
	ua := useragent.Parse(r.UserAgent())

	browser := ua.Name
	if browser == "" {
		browser = "Unknown"
	}
	device := "desktop"
	switch {
	case ua.Mobile:
		device = "mobile"
	case ua.Tablet:
		device = "tablet"
	case ua.Bot:
		device = "bot"
	}

	return []any{
		"category", "auth",
		"ip", middleware.ClientIP(r),
		"browser", browser,
		"os", ua.OS,
		"device", device,
	}
}
