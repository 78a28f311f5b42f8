// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/blogadmin/internal/console"
	"github.com/olegiv/blogadmin/internal/middleware"
)

// Routes holds the handlers served behind the session stack.
type Routes struct {
	Auth     *AuthHandler
	Admin    *AdminHandler
	Sessions console.SessionProvider

	// LoginLimit wraps POST /login when set.
	LoginLimit func(http.Handler) http.Handler
}

// Register mounts the console routes on r. The caller installs session
// loading, language and CSRF middleware first. Logout is POST only.
func (rt Routes) Register(r chi.Router) {
	r.Get(RouteRoot, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, RouteAdmin, http.StatusSeeOther)
	})

	r.Get(RouteLogin, rt.Auth.LoginForm)
	r.Get(RouteRegister, rt.Auth.RegisterForm)
	if rt.LoginLimit != nil {
		r.With(rt.LoginLimit).Post(RouteLogin, rt.Auth.Login)
	} else {
		r.Post(RouteLogin, rt.Auth.Login)
	}
	r.Post(RouteLogout, rt.Auth.Logout)
	r.Post(RouteLanguage, rt.Auth.SetLanguage)

	r.Route(RouteAdmin, func(r chi.Router) {
		r.Use(middleware.RequireSession(rt.Sessions))

		r.Get(RouteRoot, rt.Admin.Dashboard)
		r.Post(RouteUsers, rt.Admin.CreateUser)
		r.Post(RoutePosts, rt.Admin.SubmitPost)
		r.Get(RoutePostsIDEdit, rt.Admin.EditPost)
		r.Get(RoutePostsIDDelete, rt.Admin.ConfirmDelete)
		r.Post(RoutePostsIDDelete, rt.Admin.DeletePost)
		r.Get(RoutePostsIDPreview, rt.Admin.Preview)
	})
}
