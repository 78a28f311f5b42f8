// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/olegiv/blogadmin/internal/model"
)

// Backend paths.
const (
	PathLogin    = "/admin/login"
	PathRegister = "/admin/register"
	PathUsers    = "/admin/users"
	PathPosts    = "/admin/posts"
)

// adminQuery scopes a request to the acting administrator. The backend
// authorizes admin-namespaced calls by this parameter alone.
func adminQuery(adminID int64) string {
	return "?admin_id=" + strconv.FormatInt(adminID, 10)
}

// postPath returns the path of a single post scoped to adminID.
func postPath(adminID, postID int64) string {
	return fmt.Sprintf("%s/%d%s", PathPosts, postID, adminQuery(adminID))
}

// Login authenticates an administrator.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.LoginResponse, error) {
	var resp model.LoginResponse
	err := c.Do(ctx, http.MethodPost, PathLogin, creds, &resp)
	return resp, err
}

// Register creates an administrator account and logs it in.
func (c *Client) Register(ctx context.Context, creds model.Credentials) (model.LoginResponse, error) {
	var resp model.LoginResponse
	err := c.Do(ctx, http.MethodPost, PathRegister, creds, &resp)
	return resp, err
}

// ListUsers returns every user visible to adminID.
func (c *Client) ListUsers(ctx context.Context, adminID int64) ([]model.AdminUser, error) {
	var users []model.AdminUser
	if err := c.Do(ctx, http.MethodGet, PathUsers+adminQuery(adminID), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a user. The admin flag travels as a query parameter;
// the body carries only the credentials.
func (c *Client) CreateUser(ctx context.Context, adminID int64, creds model.Credentials, isAdmin bool) (model.AdminUser, error) {
	var user model.AdminUser
	path := PathUsers + adminQuery(adminID) + "&is_admin=" + strconv.FormatBool(isAdmin)
	err := c.Do(ctx, http.MethodPost, path, creds, &user)
	return user, err
}

// ListPosts returns every post visible to adminID.
func (c *Client) ListPosts(ctx context.Context, adminID int64) ([]model.Post, error) {
	var posts []model.Post
	if err := c.Do(ctx, http.MethodGet, PathPosts+adminQuery(adminID), nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost creates a post.
func (c *Client) CreatePost(ctx context.Context, adminID int64, post model.PostCreate) (model.Post, error) {
	var created model.Post
	err := c.Do(ctx, http.MethodPost, PathPosts+adminQuery(adminID), post, &created)
	return created, err
}

// UpdatePost replaces the editable fields of postID.
func (c *Client) UpdatePost(ctx context.Context, adminID, postID int64, post model.PostUpdate) (model.Post, error) {
	var updated model.Post
	err := c.Do(ctx, http.MethodPut, postPath(adminID, postID), post, &updated)
	return updated, err
}

// DeletePost deletes postID. The backend answers 204 with no body.
func (c *Client) DeletePost(ctx context.Context, adminID, postID int64) error {
	return c.Do(ctx, http.MethodDelete, postPath(adminID, postID), nil, nil)
}
