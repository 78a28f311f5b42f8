// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"fmt"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/blogadmin/internal/model"
)

// Keys under which the administrator identity is stored.
const (
	KeyAdminID   = "admin_id"
	KeyAdminName = "admin_username"
)

// Store adapts an scs session manager to the console's session contract.
// The context passed to its methods must have been loaded by the manager's
// LoadAndSave middleware.
type Store struct {
	sm *scs.SessionManager
}

// NewStore wraps sm.
func NewStore(sm *scs.SessionManager) *Store {
	return &Store{sm: sm}
}

// Load returns the stored session. A missing or zero admin id means no
// session; a missing name loads as model.DefaultAdminName.
func (s *Store) Load(ctx context.Context) (model.Session, bool) {
	id := s.sm.GetInt64(ctx, KeyAdminID)
	if id <= 0 {
		return model.Session{}, false
	}
	name := s.sm.GetString(ctx, KeyAdminName)
	if name == "" {
		name = model.DefaultAdminName
	}
	return model.Session{AdminID: id, AdminName: name}, true
}

// Save renews the session token and stores both keys.
func (s *Store) Save(ctx context.Context, sess model.Session) error {
	if err := s.sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	s.sm.Put(ctx, KeyAdminID, sess.AdminID)
	s.sm.Put(ctx, KeyAdminName, sess.AdminName)
	return nil
}

// Clear destroys the session.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.sm.Destroy(ctx); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}
	return nil
}
