// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for the web console: the session
// guard, UI language selection, CSRF protection, login throttling and
// security headers.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/blogadmin/internal/console"
	"github.com/olegiv/blogadmin/internal/i18n"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyLang holds the resolved UI language.
const ContextKeyLang ContextKey = "lang"

// SessionKeyLang stores the chosen UI language.
const SessionKeyLang = "ui_lang"

// RequireSession redirects to the login view when no administrator session
// exists. Handlers load the session themselves through their views.
func RequireSession(sp console.SessionProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := sp.Load(r.Context())
			if !ok || !s.Valid() {
				slog.DebugContext(r.Context(), "no session, redirecting to login", "path", r.URL.Path)
				http.Redirect(w, r, console.PathLogin, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Language resolves the UI language from the session preference, then the
// Accept-Language header, and stores it in the request context.
func Language(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if sm != nil {
				if l := sm.GetString(r.Context(), SessionKeyLang); i18n.IsSupported(l) {
					lang = l
				}
			}
			if lang == "" {
				lang = i18n.MatchLanguage(r.Header.Get("Accept-Language"))
			}

			ctx := context.WithValue(r.Context(), ContextKeyLang, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLang returns the UI language for the request.
func GetLang(r *http.Request) string {
	if lang, ok := r.Context().Value(ContextKeyLang).(string); ok && lang != "" {
		return lang
	}
	return i18n.DefaultLanguage
}
