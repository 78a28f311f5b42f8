// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"context"
	"log/slog"
	"sync"

	"github.com/olegiv/blogadmin/internal/model"
)

// Tab names the two collections of the admin view.
type Tab string

const (
	TabUsers Tab = "users"
	TabPosts Tab = "posts"
)

// ParseTab returns TabPosts for "posts" and TabUsers otherwise.
func ParseTab(s string) Tab {
	if s == string(TabPosts) {
		return TabPosts
	}
	return TabUsers
}

// LoadState tracks one collection's fetch cycle.
type LoadState int

const (
	LoadIdle LoadState = iota
	LoadLoading
	LoadLoaded
	LoadErrored
)

// UserForm is the create-user form.
type UserForm struct {
	Username string
	Password string
	IsAdmin  bool
}

// Confirmer asks the operator to confirm a destructive action.
type Confirmer func() bool

// AdminView owns the users and posts collections, their load state, the
// shared error banner and the post draft buffer. It is safe for concurrent
// use; concurrent reloads of one collection are last-write-wins.
type AdminView struct {
	backend  Backend
	sessions SessionProvider
	logger   *slog.Logger

	mu           sync.Mutex
	session      model.Session
	users        []model.AdminUser
	posts        []model.Post
	usersState   LoadState
	postsState   LoadState
	loadingUsers bool
	loadingPosts bool
	err          string
	userForm     UserForm
	draft        model.PostDraft
	redirect     string
}

// NewAdminView creates an unmounted view.
func NewAdminView(b Backend, sp SessionProvider, logger *slog.Logger) *AdminView {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminView{
		backend:  b,
		sessions: sp,
		logger:   logger,
		draft:    model.NewPostDraft(),
	}
}

// Guard loads the session. Without one it sets the redirect to the login
// view and returns false; no backend call is made.
func (v *AdminView) Guard(ctx context.Context) bool {
	s, ok := v.sessions.Load(ctx)
	v.mu.Lock()
	defer v.mu.Unlock()
	if !ok || !s.Valid() {
		v.redirect = PathLogin
		return false
	}
	v.session = s
	return true
}

// Mount runs Guard and, when a session exists, loads both collections. The
// banner is cleared once up front so a failure in either load stays visible.
func (v *AdminView) Mount(ctx context.Context) bool {
	if !v.Guard(ctx) {
		return false
	}
	id := v.adminID()
	v.setError("")
	v.loadUsers(ctx, id)
	v.loadPosts(ctx, id)
	return true
}

// adminID returns the session's admin id, or 0 before a successful Guard.
func (v *AdminView) adminID() int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session.AdminID
}

// setError replaces the banner text.
func (v *AdminView) setError(msg string) {
	v.mu.Lock()
	v.err = msg
	v.mu.Unlock()
}

// LoadUsers clears the banner and refreshes the user collection.
func (v *AdminView) LoadUsers(ctx context.Context) {
	id := v.adminID()
	if id == 0 {
		return
	}
	v.setError("")
	v.loadUsers(ctx, id)
}

// LoadPosts clears the banner and refreshes the post collection.
func (v *AdminView) LoadPosts(ctx context.Context) {
	id := v.adminID()
	if id == 0 {
		return
	}
	v.setError("")
	v.loadPosts(ctx, id)
}

// loadUsers replaces the user collection wholesale. On failure the previous
// collection is kept and the banner is set; success leaves the banner alone.
func (v *AdminView) loadUsers(ctx context.Context, id int64) {
	v.mu.Lock()
	v.loadingUsers = true
	v.usersState = LoadLoading
	v.mu.Unlock()

	users, err := v.backend.ListUsers(ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loadingUsers = false
	if err != nil {
		v.usersState = LoadErrored
		v.err = Message(err, msgLoadUsers)
		v.logger.Warn("loading users failed", "admin_id", id, "error", err)
		return
	}
	v.users = users
	v.usersState = LoadLoaded
}

// loadPosts is loadUsers for the post collection.
func (v *AdminView) loadPosts(ctx context.Context, id int64) {
	v.mu.Lock()
	v.loadingPosts = true
	v.postsState = LoadLoading
	v.mu.Unlock()

	posts, err := v.backend.ListPosts(ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loadingPosts = false
	if err != nil {
		v.postsState = LoadErrored
		v.err = Message(err, msgLoadPosts)
		v.logger.Warn("loading posts failed", "admin_id", id, "error", err)
		return
	}
	v.posts = posts
	v.postsState = LoadLoaded
}

// SetUserForm replaces the create-user form contents.
func (v *AdminView) SetUserForm(f UserForm) {
	v.mu.Lock()
	v.userForm = f
	v.mu.Unlock()
}

// CreateUser submits the create-user form. On success the form is reset and
// the user collection reloaded.
func (v *AdminView) CreateUser(ctx context.Context) error {
	id := v.adminID()
	if id == 0 {
		return ErrNoSession
	}

	v.mu.Lock()
	form := v.userForm
	v.err = ""
	v.mu.Unlock()

	if form.Username == "" || form.Password == "" {
		v.setError(Message(ErrUserFormIncomplete, msgCreateUser))
		return ErrUserFormIncomplete
	}

	creds := model.Credentials{Username: form.Username, Password: form.Password}
	user, err := v.backend.CreateUser(ctx, id, creds, form.IsAdmin)
	if err != nil {
		v.setError(Message(err, msgCreateUser))
		v.logger.Warn("creating user failed", "admin_id", id, "username", form.Username, "error", err)
		return err
	}
	v.logger.Info("user created", "admin_id", id, "user_id", user.ID, "is_admin", user.IsAdmin)

	v.SetUserForm(UserForm{})
	v.LoadUsers(ctx)
	return nil
}

// SetDraft replaces the post draft buffer, edit target included.
func (v *AdminView) SetDraft(d model.PostDraft) {
	v.mu.Lock()
	v.draft = d
	v.mu.Unlock()
}

// BeginEdit fills the draft from p and targets p for update.
func (v *AdminView) BeginEdit(p model.Post) {
	v.SetDraft(model.DraftFromPost(p))
}

// CancelEdit resets the draft to defaults and clears the edit target.
func (v *AdminView) CancelEdit() {
	v.SetDraft(model.NewPostDraft())
}

// SubmitPost creates a post from the draft, or updates the edit target when
// one is set. On success the draft is reset and posts are reloaded.
func (v *AdminView) SubmitPost(ctx context.Context) error {
	id := v.adminID()
	if id == 0 {
		return ErrNoSession
	}

	v.mu.Lock()
	draft := v.draft
	v.err = ""
	v.mu.Unlock()

	var err error
	if draft.Editing() {
		_, err = v.backend.UpdatePost(ctx, id, draft.EditingID, draft.UpdatePayload())
	} else {
		_, err = v.backend.CreatePost(ctx, id, draft.Payload())
	}
	if err != nil {
		v.setError(Message(err, msgSavePost))
		v.logger.Warn("saving post failed", "admin_id", id, "post_id", draft.EditingID, "error", err)
		return err
	}
	v.logger.Info("post saved", "admin_id", id, "post_id", draft.EditingID, "updated", draft.Editing())

	v.CancelEdit()
	v.LoadPosts(ctx)
	return nil
}

// DeletePost deletes postID once confirm agrees. A declined confirmation
// issues no request. On success posts are reloaded.
func (v *AdminView) DeletePost(ctx context.Context, postID int64, confirm Confirmer) error {
	id := v.adminID()
	if id == 0 {
		return ErrNoSession
	}
	if confirm != nil && !confirm() {
		return nil
	}

	v.setError("")
	if err := v.backend.DeletePost(ctx, id, postID); err != nil {
		v.setError(Message(err, msgDeletePost))
		v.logger.Warn("deleting post failed", "admin_id", id, "post_id", postID, "error", err)
		return err
	}
	v.logger.Info("post deleted", "admin_id", id, "post_id", postID)

	v.LoadPosts(ctx)
	return nil
}

// Logout clears the session and points the view at the login screen. It
// never contacts the backend.
func (v *AdminView) Logout(ctx context.Context) error {
	err := v.sessions.Clear(ctx)
	v.mu.Lock()
	v.session = model.Session{}
	v.redirect = PathLogin
	v.mu.Unlock()
	return err
}

// Snapshot is a consistent copy of the view state for rendering.
type Snapshot struct {
	Session      model.Session
	Users        []model.AdminUser
	Posts        []model.Post
	UsersState   LoadState
	PostsState   LoadState
	LoadingUsers bool
	LoadingPosts bool
	Error        string
	UserForm     UserForm
	Draft        model.PostDraft
	Redirect     string
}

// Snapshot returns a copy of the current state.
func (v *AdminView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{
		Session:      v.session,
		Users:        append([]model.AdminUser(nil), v.users...),
		Posts:        append([]model.Post(nil), v.posts...),
		UsersState:   v.usersState,
		PostsState:   v.postsState,
		LoadingUsers: v.loadingUsers,
		LoadingPosts: v.loadingPosts,
		Error:        v.err,
		UserForm:     v.userForm,
		Draft:        v.draft,
		Redirect:     v.redirect,
	}
}

// FindPost returns the loaded post with the given id.
func (v *AdminView) FindPost(postID int64) (model.Post, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, p := range v.posts {
		if p.ID == postID {
			return p, true
		}
	}
	return model.Post{}, false
}
