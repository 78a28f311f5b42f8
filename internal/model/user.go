// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the wire types exchanged with the content backend
// and the client-side state built from them: sessions, admin users, posts
// and the post draft buffer.
package model

// AdminUser is a backend user as listed on the users tab.
type AdminUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// Credentials is the body of login, register and create-user requests.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Complete reports whether both fields are non-empty.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Password != ""
}

// LoginResponse is returned by /admin/login and /admin/register.
type LoginResponse struct {
	Message  string `json:"message"`
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username"`
}
