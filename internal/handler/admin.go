// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/blogadmin/internal/console"
	"github.com/olegiv/blogadmin/internal/i18n"
	"github.com/olegiv/blogadmin/internal/middleware"
	"github.com/olegiv/blogadmin/internal/model"
	"github.com/olegiv/blogadmin/internal/preview"
	"github.com/olegiv/blogadmin/internal/render"
	"github.com/olegiv/blogadmin/internal/session"
)

// dashboardPage is the view model of admin/dashboard.
type dashboardPage struct {
	Tab  console.Tab
	View console.Snapshot
}

// confirmDeletePage is the view model of admin/confirm_delete.
type confirmDeletePage struct {
	Post model.Post
}

// previewPage is the view model of admin/preview.
type previewPage struct {
	Post   model.Post
	HTML   template.HTML
	Images []string
}

// AdminHandler serves the users and posts tabs.
type AdminHandler struct {
	backend  console.Backend
	sessions console.SessionProvider
	renderer *render.Renderer
	preview  *preview.Renderer
	logger   *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(b console.Backend, sm *scs.SessionManager, renderer *render.Renderer, pv *preview.Renderer, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if pv == nil {
		pv = preview.New()
	}
	return &AdminHandler{
		backend:  b,
		sessions: session.NewStore(sm),
		renderer: renderer,
		preview:  pv,
		logger:   logger,
	}
}

func (h *AdminHandler) newView() *console.AdminView {
	return console.NewAdminView(h.backend, h.sessions, h.logger)
}

// redirectToLogin sends the browser wherever the view's guard points.
func redirectToLogin(w http.ResponseWriter, r *http.Request, v *console.AdminView) {
	target := v.Snapshot().Redirect
	if target == "" {
		target = console.PathLogin
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Dashboard handles GET /admin. Both collections are loaded; ?tab selects
// which one is shown.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	v := h.newView()
	if !v.Mount(r.Context()) {
		redirectToLogin(w, r, v)
		return
	}
	h.renderTab(w, r, http.StatusOK, v, console.ParseTab(r.URL.Query().Get("tab")), "")
}

// CreateUser handles POST /admin/users.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	v := h.newView()
	if !v.Mount(r.Context()) {
		redirectToLogin(w, r, v)
		return
	}

	v.SetUserForm(console.UserForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
		IsAdmin:  r.PostFormValue("is_admin") == formValueTrue,
	})
	_ = v.CreateUser(r.Context())

	h.renderTab(w, r, http.StatusOK, v, console.TabUsers, "")
}

// EditPost handles GET /admin/posts/{id}/edit by loading the post into the
// draft.
func (h *AdminHandler) EditPost(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	v := h.newView()
	if !v.Mount(r.Context()) {
		redirectToLogin(w, r, v)
		return
	}

	post, found := v.FindPost(id)
	if !found {
		h.renderTab(w, r, http.StatusNotFound, v, console.TabPosts, "error.not_found")
		return
	}
	v.BeginEdit(post)

	h.renderTab(w, r, http.StatusOK, v, console.TabPosts, "")
}

// SubmitPost handles POST /admin/posts. A non-empty editing_id updates that
// post; otherwise a new post is created.
func (h *AdminHandler) SubmitPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	v := h.newView()
	if !v.Mount(r.Context()) {
		redirectToLogin(w, r, v)
		return
	}

	v.SetDraft(draftFromForm(r))
	_ = v.SubmitPost(r.Context())

	h.renderTab(w, r, http.StatusOK, v, console.TabPosts, "")
}

// draftFromForm reads the post form. Unparsable ids are treated as absent.
func draftFromForm(r *http.Request) model.PostDraft {
	d := model.PostDraft{
		Type:      r.PostFormValue("type"),
		Title:     r.PostFormValue("title"),
		Content:   r.PostFormValue("content"),
		Excerpt:   r.PostFormValue("excerpt"),
		Author:    r.PostFormValue("author"),
		Tags:      r.PostFormValue("tags"),
		CoverURL:  r.PostFormValue("cover_url"),
		ImageURLs: r.PostFormValue("image_urls"),
	}
	if id, err := strconv.ParseInt(r.PostFormValue("owner_id"), 10, 64); err == nil && id > 0 {
		d.OwnerID = id
	}
	if id, err := strconv.ParseInt(r.PostFormValue("editing_id"), 10, 64); err == nil && id > 0 {
		d.EditingID = id
	}
	return d
}

// ConfirmDelete handles GET /admin/posts/{id}/delete with a confirmation
// prompt. No delete request is issued.
func (h *AdminHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	v := h.newView()
	if !v.Guard(r.Context()) {
		redirectToLogin(w, r, v)
		return
	}
	v.LoadPosts(r.Context())

	post, found := v.FindPost(id)
	if !found {
		h.renderTab(w, r, http.StatusNotFound, v, console.TabPosts, "error.not_found")
		return
	}

	h.render(w, r, http.StatusOK, templateConfirmDelete, i18n.T(middleware.GetLang(r), "delete.title"), v, console.TabPosts, "", confirmDeletePage{Post: post})
}

// DeletePost handles POST /admin/posts/{id}/delete. Only confirm=yes deletes;
// any other answer returns to the posts tab without a request.
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	v := h.newView()
	if !v.Guard(r.Context()) {
		redirectToLogin(w, r, v)
		return
	}
	v.LoadPosts(r.Context())

	confirmed := r.PostFormValue("confirm") == formConfirmYes
	_ = v.DeletePost(r.Context(), id, func() bool { return confirmed })

	h.renderTab(w, r, http.StatusOK, v, console.TabPosts, "")
}

// Preview handles GET /admin/posts/{id}/preview, rendering the content as
// sanitized Markdown.
func (h *AdminHandler) Preview(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	v := h.newView()
	if !v.Guard(r.Context()) {
		redirectToLogin(w, r, v)
		return
	}
	v.LoadPosts(r.Context())

	post, found := v.FindPost(id)
	if !found {
		h.renderTab(w, r, http.StatusNotFound, v, console.TabPosts, "error.not_found")
		return
	}

	html, err := h.preview.Render(post.Content)
	if err != nil {
		logAndInternalError(w, r, "failed to render preview", "post_id", id, "error", err)
		return
	}

	var images string
	if post.ImageURLs != nil {
		images = *post.ImageURLs
	}
	page := previewPage{Post: post, HTML: html, Images: h.preview.Images(images)}
	h.render(w, r, http.StatusOK, templatePreview, post.Title, v, console.TabPosts, "", page)
}

// renderTab renders the dashboard on tab. A non-empty bannerKey replaces the
// view's own error text.
func (h *AdminHandler) renderTab(w http.ResponseWriter, r *http.Request, status int, v *console.AdminView, tab console.Tab, bannerKey string) {
	title := i18n.T(middleware.GetLang(r), "tab."+string(tab))
	page := dashboardPage{Tab: tab, View: v.Snapshot()}
	h.render(w, r, status, templateDashboard, title, v, tab, bannerKey, page)
}

func (h *AdminHandler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, v *console.AdminView, tab console.Tab, bannerKey string, data any) {
	lang := middleware.GetLang(r)
	snap := v.Snapshot()

	banner := snap.Error
	if bannerKey != "" {
		banner = bannerKey
	}
	if banner != "" {
		banner = i18n.T(lang, banner)
	}

	err := h.renderer.RenderStatus(w, r, status, name, render.TemplateData{
		Title:   title,
		Lang:    lang,
		Session: snap.Session,
		Tab:     string(tab),
		Error:   banner,
		Data:    data,
	})
	if err != nil {
		logAndInternalError(w, r, "failed to render template", "template", name, "error", err)
	}
}
