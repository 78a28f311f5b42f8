// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session persists the administrator session for the web console
// (scs over SQLite or Redis) and for the command-line client (a YAML file).
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// DefaultLifetime is used when New is given a non-positive lifetime.
const DefaultLifetime = 24 * time.Hour

// New creates a session manager backed by the sessions table in db.
func New(db *sql.DB, isDev bool, lifetime time.Duration) *scs.SessionManager {
	return newManager(sqlite3store.New(db), isDev, lifetime)
}

// NewWithStore creates a session manager over an arbitrary scs store.
func NewWithStore(store scs.Store, isDev bool, lifetime time.Duration) *scs.SessionManager {
	return newManager(store, isDev, lifetime)
}

func newManager(store scs.Store, isDev bool, lifetime time.Duration) *scs.SessionManager {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}

	sm := scs.New()
	sm.Store = store
	sm.Lifetime = lifetime
	sm.Cookie.Name = "blogadmin_session"
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev

	// __Host- cookies require Secure and Path=/ with no Domain.
	if !isDev {
		sm.Cookie.Name = "__Host-blogadmin_session"
	}

	return sm
}
