// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package console holds the state machines behind the admin screens: the
// login/register view and the admin view with its users and posts tabs.
// Views talk to the backend through Backend and to the session store through
// SessionProvider, so the web console and the CLI share the same behaviour.
package console

import (
	"context"
	"errors"

	"github.com/olegiv/blogadmin/internal/api"
	"github.com/olegiv/blogadmin/internal/model"
)

// Navigation targets.
const (
	PathLogin = "/login"
	PathAdmin = "/admin"
)

// Backend is the subset of the API client used by the views.
type Backend interface {
	Login(ctx context.Context, creds model.Credentials) (model.LoginResponse, error)
	Register(ctx context.Context, creds model.Credentials) (model.LoginResponse, error)
	ListUsers(ctx context.Context, adminID int64) ([]model.AdminUser, error)
	CreateUser(ctx context.Context, adminID int64, creds model.Credentials, isAdmin bool) (model.AdminUser, error)
	ListPosts(ctx context.Context, adminID int64) ([]model.Post, error)
	CreatePost(ctx context.Context, adminID int64, post model.PostCreate) (model.Post, error)
	UpdatePost(ctx context.Context, adminID, postID int64, post model.PostUpdate) (model.Post, error)
	DeletePost(ctx context.Context, adminID, postID int64) error
}

var _ Backend = (*api.Client)(nil)

// SessionProvider persists the logged-in administrator.
// Load reports false when no session exists.
type SessionProvider interface {
	Load(ctx context.Context) (model.Session, bool)
	Save(ctx context.Context, s model.Session) error
	Clear(ctx context.Context) error
}

// Errors returned by view operations.
var (
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrUserFormIncomplete  = errors.New("new user needs a username and password")
	ErrNoSession           = errors.New("not logged in")
)

// Fallback banner texts used when an error carries no backend message.
const (
	msgLoginFailed    = "login failed"
	msgRegisterFailed = "registration failed"
	msgLoadUsers      = "failed to load users"
	msgLoadPosts      = "failed to load posts"
	msgCreateUser     = "failed to create user"
	msgSavePost       = "failed to save post"
	msgDeletePost     = "failed to delete post"
	msgSaveSession    = "failed to save session"
)

// Message returns the text to show in the error banner for err. Backend
// errors show their normalized message; validation errors show their own
// text; anything else (transport faults, decode failures) shows fallback.
func Message(err error, fallback string) string {
	var apiErr *api.Error
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, ErrCredentialsRequired), errors.Is(err, ErrUserFormIncomplete), errors.Is(err, ErrNoSession):
		return err.Error()
	default:
		return fallback
	}
}
