// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"context"
	"sync"

	"github.com/olegiv/blogadmin/internal/model"
)

// call records one backend invocation.
type call struct {
	Op      string
	AdminID int64
	PostID  int64
	IsAdmin bool
	Creds   model.Credentials
	Create  model.PostCreate
	Update  model.PostUpdate
}

// fakeBackend is an in-memory Backend that records every call.
type fakeBackend struct {
	mu    sync.Mutex
	calls []call

	loginResp model.LoginResponse
	loginErr  error
	users     []model.AdminUser
	usersErr  error
	posts     []model.Post
	postsErr  error
	writeErr  error
	nextID    int64
}

func (f *fakeBackend) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeBackend) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Op
	}
	return out
}

func (f *fakeBackend) last(op string) (call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Op == op {
			return f.calls[i], true
		}
	}
	return call{}, false
}

func (f *fakeBackend) Login(_ context.Context, creds model.Credentials) (model.LoginResponse, error) {
	f.record(call{Op: "login", Creds: creds})
	return f.loginResp, f.loginErr
}

func (f *fakeBackend) Register(_ context.Context, creds model.Credentials) (model.LoginResponse, error) {
	f.record(call{Op: "register", Creds: creds})
	return f.loginResp, f.loginErr
}

func (f *fakeBackend) ListUsers(_ context.Context, adminID int64) ([]model.AdminUser, error) {
	f.record(call{Op: "list_users", AdminID: adminID})
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.AdminUser(nil), f.users...), nil
}

func (f *fakeBackend) CreateUser(_ context.Context, adminID int64, creds model.Credentials, isAdmin bool) (model.AdminUser, error) {
	f.record(call{Op: "create_user", AdminID: adminID, Creds: creds, IsAdmin: isAdmin})
	if f.writeErr != nil {
		return model.AdminUser{}, f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u := model.AdminUser{ID: 100 + f.nextID, Username: creds.Username, IsAdmin: isAdmin}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeBackend) ListPosts(_ context.Context, adminID int64) ([]model.Post, error) {
	f.record(call{Op: "list_posts", AdminID: adminID})
	if f.postsErr != nil {
		return nil, f.postsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Post(nil), f.posts...), nil
}

func (f *fakeBackend) CreatePost(_ context.Context, adminID int64, post model.PostCreate) (model.Post, error) {
	f.record(call{Op: "create_post", AdminID: adminID, Create: post})
	if f.writeErr != nil {
		return model.Post{}, f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p := model.Post{ID: 200 + f.nextID, Type: post.Type, Title: post.Title, Content: post.Content, Excerpt: post.Excerpt, Author: post.Author, OwnerID: adminID}
	f.posts = append(f.posts, p)
	return p, nil
}

func (f *fakeBackend) UpdatePost(_ context.Context, adminID, postID int64, post model.PostUpdate) (model.Post, error) {
	f.record(call{Op: "update_post", AdminID: adminID, PostID: postID, Update: post})
	if f.writeErr != nil {
		return model.Post{}, f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.posts {
		if p.ID == postID && post.Title != nil {
			f.posts[i].Title = *post.Title
			return f.posts[i], nil
		}
	}
	return model.Post{ID: postID}, nil
}

func (f *fakeBackend) DeletePost(_ context.Context, adminID, postID int64) error {
	f.record(call{Op: "delete_post", AdminID: adminID, PostID: postID})
	if f.writeErr != nil {
		return f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.posts[:0]
	for _, p := range f.posts {
		if p.ID != postID {
			kept = append(kept, p)
		}
	}
	f.posts = kept
	return nil
}

// memorySessions is an in-memory SessionProvider.
type memorySessions struct {
	s       model.Session
	ok      bool
	saveErr error
}

func (m *memorySessions) Load(context.Context) (model.Session, bool) {
	return m.s, m.ok
}

func (m *memorySessions) Save(_ context.Context, s model.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.s, m.ok = s, true
	return nil
}

func (m *memorySessions) Clear(context.Context) error {
	m.s, m.ok = model.Session{}, false
	return nil
}
