// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteLogin serves the login and register form.
	RouteLogin = "/login"
	// RouteRegister is an alias of the login form in register mode.
	RouteRegister = "/register"
	// RouteLogout clears the session.
	RouteLogout = "/logout"
	// RouteLanguage stores the UI language.
	RouteLanguage = "/language"
	// RouteHealth is the health check.
	RouteHealth = "/health"
	// RouteMetrics is the Prometheus endpoint.
	RouteMetrics = "/metrics"

	// RouteAdmin is the admin view.
	RouteAdmin = "/admin"
	// RouteUsers is the users route, relative to RouteAdmin.
	RouteUsers = "/users"
	// RoutePosts is the posts route, relative to RouteAdmin.
	RoutePosts = "/posts"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RoutePostsIDEdit loads a post into the draft.
	RoutePostsIDEdit = RoutePosts + RouteParamID + "/edit"
	// RoutePostsIDDelete confirms and deletes a post.
	RoutePostsIDDelete = RoutePosts + RouteParamID + "/delete"
	// RoutePostsIDPreview renders a post's content.
	RoutePostsIDPreview = RoutePosts + RouteParamID + "/preview"
)

// Template names.
const (
	templateLogin         = "auth/login"
	templateDashboard     = "admin/dashboard"
	templateConfirmDelete = "admin/confirm_delete"
	templatePreview       = "admin/preview"
)

// Form values.
const (
	formConfirmYes = "yes"
	formValueTrue  = "true"
)

// HeaderContentType is the Content-Type HTTP header name.
const HeaderContentType = "Content-Type"
