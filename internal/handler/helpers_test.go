// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/blogadmin/internal/i18n"
	"github.com/olegiv/blogadmin/internal/middleware"
	"github.com/olegiv/blogadmin/internal/model"
	"github.com/olegiv/blogadmin/internal/render"
	"github.com/olegiv/blogadmin/internal/session"
	"github.com/olegiv/blogadmin/web"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// fakeBackend is an in-memory console.Backend recording the operations it
// receives.
type fakeBackend struct {
	mu  sync.Mutex
	log []string

	loginResp model.LoginResponse
	loginErr  error
	users     []model.AdminUser
	usersErr  error
	posts     []model.Post
	writeErr  error

	lastCreate model.PostCreate
	lastUpdate model.PostUpdate
	lastPostID int64
}

func newFakeBackend() *fakeBackend {
	tags := "go,web"
	images := "https://img.example/1.png, https://img.example/2.png"
	return &fakeBackend{
		loginResp: model.LoginResponse{Message: "ok", AdminID: 1, Username: "admin"},
		users:     []model.AdminUser{{ID: 1, Username: "admin", IsAdmin: true}},
		posts: []model.Post{{
			ID:        7,
			Type:      model.DefaultPostType,
			Title:     "First post",
			Content:   "# Hello\n\nSome *text*.",
			Excerpt:   "hello",
			Author:    "admin",
			Tags:      &tags,
			ImageURLs: &images,
			OwnerID:   1,
			CreatedAt: "2025-06-01T10:00:00",
		}},
	}
}

func (f *fakeBackend) record(op string) {
	f.mu.Lock()
	f.log = append(f.log, op)
	f.mu.Unlock()
}

func (f *fakeBackend) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.log...)
}

func (f *fakeBackend) count(op string) int {
	n := 0
	for _, o := range f.ops() {
		if o == op {
			n++
		}
	}
	return n
}

func (f *fakeBackend) Login(context.Context, model.Credentials) (model.LoginResponse, error) {
	f.record("login")
	return f.loginResp, f.loginErr
}

func (f *fakeBackend) Register(context.Context, model.Credentials) (model.LoginResponse, error) {
	f.record("register")
	return f.loginResp, f.loginErr
}

func (f *fakeBackend) ListUsers(context.Context, int64) ([]model.AdminUser, error) {
	f.record("list_users")
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.AdminUser(nil), f.users...), nil
}

func (f *fakeBackend) CreateUser(_ context.Context, _ int64, creds model.Credentials, isAdmin bool) (model.AdminUser, error) {
	f.record("create_user")
	if f.writeErr != nil {
		return model.AdminUser{}, f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u := model.AdminUser{ID: int64(len(f.users) + 1), Username: creds.Username, IsAdmin: isAdmin}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeBackend) ListPosts(context.Context, int64) ([]model.Post, error) {
	f.record("list_posts")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Post(nil), f.posts...), nil
}

func (f *fakeBackend) CreatePost(_ context.Context, adminID int64, post model.PostCreate) (model.Post, error) {
	f.record("create_post")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCreate = post
	if f.writeErr != nil {
		return model.Post{}, f.writeErr
	}
	p := model.Post{ID: 100, Type: post.Type, Title: post.Title, Content: post.Content, OwnerID: adminID}
	f.posts = append(f.posts, p)
	return p, nil
}

func (f *fakeBackend) UpdatePost(_ context.Context, _ int64, postID int64, post model.PostUpdate) (model.Post, error) {
	f.record("update_post")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUpdate, f.lastPostID = post, postID
	if f.writeErr != nil {
		return model.Post{}, f.writeErr
	}
	for i := range f.posts {
		if f.posts[i].ID == postID && post.Title != nil {
			f.posts[i].Title = *post.Title
		}
	}
	return model.Post{ID: postID}, nil
}

func (f *fakeBackend) DeletePost(_ context.Context, _ int64, postID int64) error {
	f.record("delete_post")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPostID = postID
	if f.writeErr != nil {
		return f.writeErr
	}
	kept := f.posts[:0]
	for _, p := range f.posts {
		if p.ID != postID {
			kept = append(kept, p)
		}
	}
	f.posts = kept
	return nil
}

// testApp wires the handlers the way the server does.
type testApp struct {
	handler http.Handler
	backend *fakeBackend
}

func newTestApp(t *testing.T, b *fakeBackend, lp *middleware.LoginProtection) *testApp {
	t.Helper()

	sm := scs.New()
	sm.Lifetime = 24 * time.Hour

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS, SessionManager: sm})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authHandler := NewAuthHandler(b, sm, renderer, lp, logger)
	adminHandler := NewAdminHandler(b, sm, renderer, nil, logger)
	healthHandler := NewHealthHandler(map[string]Pinger{
		"sessions": func(context.Context) error { return nil },
	}, nil)

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Use(middleware.Language(sm))

	r.Get(RouteHealth, healthHandler.Health)
	Routes{
		Auth:     authHandler,
		Admin:    adminHandler,
		Sessions: session.NewStore(sm),
	}.Register(r)

	return &testApp{handler: r, backend: b}
}

// do serves one request carrying cookies.
func (a *testApp) do(method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(HeaderContentType, "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

// login posts valid credentials and returns the session cookies.
func (a *testApp) login(t *testing.T) []*http.Cookie {
	t.Helper()
	w := a.do(http.MethodPost, RouteLogin, url.Values{"username": {"admin"}, "password": {"secret"}}, nil)
	assertStatus(t, w.Code, http.StatusSeeOther)
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login did not set a session cookie")
	}
	return cookies
}

// assertStatus checks if the response status code matches the expected value.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

func assertLocation(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	if got := w.Header().Get("Location"); got != want {
		t.Errorf("Location = %q; want %q", got, want)
	}
}

func assertContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Errorf("body does not contain %q", want)
	}
}
