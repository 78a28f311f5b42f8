// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// DefaultAdminName is shown when a session carries an id but no display name.
const DefaultAdminName = "Administrator"

// Session identifies the logged-in administrator.
// A zero AdminID means no session.
type Session struct {
	AdminID   int64
	AdminName string
}

// Valid reports whether the session identifies an administrator.
func (s Session) Valid() bool {
	return s.AdminID > 0
}

// DisplayName returns the admin name, or DefaultAdminName when unset.
func (s Session) DisplayName() string {
	if s.AdminName == "" {
		return DefaultAdminName
	}
	return s.AdminName
}
