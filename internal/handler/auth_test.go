// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/olegiv/blogadmin/internal/api"
	"github.com/olegiv/blogadmin/internal/middleware"
)

func TestAuthHandler_LoginForm(t *testing.T) {
	app := newTestApp(t, newFakeBackend(), nil)

	tests := []struct {
		name   string
		target string
		mode   string
	}{
		{"login", "/login", "login"},
		{"register query", "/login?mode=register", "register"},
		{"register alias", "/register", "register"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(http.MethodGet, tt.target, nil, nil)
			assertStatus(t, w.Code, http.StatusOK)
			assertContains(t, w.Body.String(), fmt.Sprintf(`name="mode" value="%s"`, tt.mode))
		})
	}

	if ops := app.backend.ops(); len(ops) != 0 {
		t.Errorf("rendering the form issued backend calls: %v", ops)
	}
}

func TestAuthHandler_LoginForm_RedirectsWhenLoggedIn(t *testing.T) {
	app := newTestApp(t, newFakeBackend(), nil)
	cookies := app.login(t)

	w := app.do(http.MethodGet, RouteLogin, nil, cookies)
	assertStatus(t, w.Code, http.StatusSeeOther)
	assertLocation(t, w, "/admin")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	app := newTestApp(t, newFakeBackend(), nil)

	w := app.do(http.MethodPost, RouteLogin, url.Values{"username": {"admin"}, "password": {"secret"}}, nil)
	assertStatus(t, w.Code, http.StatusSeeOther)
	assertLocation(t, w, "/admin")

	w = app.do(http.MethodGet, RouteAdmin, nil, w.Result().Cookies())
	assertStatus(t, w.Code, http.StatusOK)
	assertContains(t, w.Body.String(), "Signed in as admin")
}

func TestAuthHandler_Login_RegisterMode(t *testing.T) {
	app := newTestApp(t, newFakeBackend(), nil)

	form := url.Values{"mode": {"register"}, "username": {"new"}, "password": {"pw"}}
	w := app.do(http.MethodPost, RouteLogin, form, nil)
	assertStatus(t, w.Code, http.StatusSeeOther)

	if app.backend.count("register") != 1 || app.backend.count("login") != 0 {
		t.Errorf("ops = %v; want a single register call", app.backend.ops())
	}
}

func TestAuthHandler_Login_Failure(t *testing.T) {
	b := newFakeBackend()
	b.loginErr = &api.Error{Status: http.StatusUnauthorized, Message: "invalid credentials"}
	app := newTestApp(t, b, nil)

	w := app.do(http.MethodPost, RouteLogin, url.Values{"username": {"admin"}, "password": {"wrong"}}, nil)
	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assertContains(t, body, "invalid credentials")
	assertContains(t, body, `value="admin"`)

	// No session was stored, so the admin view still bounces.
	w = app.do(http.MethodGet, RouteAdmin, nil, w.Result().Cookies())
	assertStatus(t, w.Code, http.StatusSeeOther)
	assertLocation(t, w, "/login")
}

func TestAuthHandler_Login_TransportFailure(t *testing.T) {
	b := newFakeBackend()
	b.loginErr = fmt.Errorf("%w: connection refused", api.ErrTransport)
	app := newTestApp(t, b, nil)

	form := url.Values{"mode": {"register"}, "username": {"new"}, "password": {"pw"}}
	w := app.do(http.MethodPost, RouteLogin, form, nil)
	assertStatus(t, w.Code, http.StatusOK)
	assertContains(t, w.Body.String(), "Registration failed")
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	app := newTestApp(t, newFakeBackend(), nil)

	w := app.do(http.MethodPost, RouteLogin, url.Values{"username": {"admin"}}, nil)
	assertStatus(t, w.Code, http.StatusOK)
	assertContains(t, w.Body.String(), "Username and password are required")

	if ops := app.backend.ops(); len(ops) != 0 {
		t.Errorf("incomplete form issued backend calls: %v", ops)
	}
}

func TestAuthHandler_Login_Lockout(t *testing.T) {
	b := newFakeBackend()
	b.loginErr = &api.Error{Status: http.StatusUnauthorized, Message: "invalid credentials"}
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		MaxFailedAttempts: 2,
		LockoutDuration:   time.Hour,
	})
	app := newTestApp(t, b, lp)

	form := url.Values{"username": {"admin"}, "password": {"wrong"}}
	for range 2 {
		w := app.do(http.MethodPost, RouteLogin, form, nil)
		assertStatus(t, w.Code, http.StatusOK)
	}

	w := app.do(http.MethodPost, RouteLogin, form, nil)
	assertStatus(t, w.Code, http.StatusTooManyRequests)
	assertContains(t, w.Body.String(), "Too many attempts")

	if n := b.count("login"); n != 2 {
		t.Errorf("login calls = %d; want 2", n)
	}
}

func TestAuthHandler_Login_TransportFailureNotCounted(t *testing.T) {
	b := newFakeBackend()
	b.loginErr = fmt.Errorf("%w: timeout", api.ErrTransport)
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{MaxFailedAttempts: 1})
	app := newTestApp(t, b, lp)

	form := url.Values{"username": {"admin"}, "password": {"secret"}}
	for range 3 {
		w := app.do(http.MethodPost, RouteLogin, form, nil)
		assertStatus(t, w.Code, http.StatusOK)
	}
	if locked, _ := lp.IsLocked("admin"); locked {
		t.Error("transport failures should not lock the account")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	app := newTestApp(t, newFakeBackend(), nil)
	cookies := app.login(t)
	before := len(app.backend.ops())

	w := app.do(http.MethodPost, RouteLogout, nil, cookies)
	assertStatus(t, w.Code, http.StatusSeeOther)
	assertLocation(t, w, "/login")

	if got := len(app.backend.ops()); got != before {
		t.Errorf("logout issued %d backend calls; want 0", got-before)
	}

	w = app.do(http.MethodGet, RouteAdmin, nil, cookies)
	assertStatus(t, w.Code, http.StatusSeeOther)
	assertLocation(t, w, "/login")
}

func TestAuthHandler_LogoutRequiresPOST(t *testing.T) {
	app := newTestApp(t, newFakeBackend(), nil)
	cookies := app.login(t)

	w := app.do(http.MethodGet, RouteLogout, nil, cookies)
	assertStatus(t, w.Code, http.StatusMethodNotAllowed)

	w = app.do(http.MethodGet, RouteAdmin, nil, cookies)
	assertStatus(t, w.Code, http.StatusOK)
}

func TestRoutes_RootRedirectsToAdmin(t *testing.T) {
	app := newTestApp(t, newFakeBackend(), nil)

	w := app.do(http.MethodGet, RouteRoot, nil, nil)
	assertStatus(t, w.Code, http.StatusSeeOther)
	assertLocation(t, w, RouteAdmin)
}

func TestAuthHandler_SetLanguage(t *testing.T) {
	app := newTestApp(t, newFakeBackend(), nil)

	w := app.do(http.MethodPost, RouteLanguage, url.Values{"lang": {"zh"}, "return": {"/login"}}, nil)
	assertStatus(t, w.Code, http.StatusSeeOther)
	assertLocation(t, w, "/login")

	w = app.do(http.MethodGet, RouteLogin, nil, w.Result().Cookies())
	assertStatus(t, w.Code, http.StatusOK)
	assertContains(t, w.Body.String(), `<html lang="zh">`)
}

func TestAuthHandler_SetLanguage_RejectsForeignReturn(t *testing.T) {
	app := newTestApp(t, newFakeBackend(), nil)

	w := app.do(http.MethodPost, RouteLanguage, url.Values{"lang": {"en"}, "return": {"//evil.example"}}, nil)
	assertStatus(t, w.Code, http.StatusSeeOther)
	assertLocation(t, w, "/admin")
}

func TestAuthHandler_SetLanguage_Unsupported(t *testing.T) {
	app := newTestApp(t, newFakeBackend(), nil)

	w := app.do(http.MethodPost, RouteLanguage, url.Values{"lang": {"xx"}, "return": {"/login"}}, nil)
	assertStatus(t, w.Code, http.StatusSeeOther)

	w = app.do(http.MethodGet, RouteLogin, nil, w.Result().Cookies())
	assertContains(t, w.Body.String(), "unsupported language")
	assertContains(t, w.Body.String(), `<html lang="en">`)
}
