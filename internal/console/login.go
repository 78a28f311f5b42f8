// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olegiv/blogadmin/internal/api"
	"github.com/olegiv/blogadmin/internal/model"
)

// Mode selects between logging in and registering.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// ParseMode maps "register" to ModeRegister and anything else to ModeLogin.
func ParseMode(s string) Mode {
	if s == "register" {
		return ModeRegister
	}
	return ModeLogin
}

func (m Mode) String() string {
	if m == ModeRegister {
		return "register"
	}
	return "login"
}

// Endpoint returns the backend path the mode submits to.
func (m Mode) Endpoint() string {
	if m == ModeRegister {
		return api.PathRegister
	}
	return api.PathLogin
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeRegister {
		return ModeLogin
	}
	return ModeRegister
}

func (m Mode) fallback() string {
	if m == ModeRegister {
		return msgRegisterFailed
	}
	return msgLoginFailed
}

// LoginState is the position of a LoginView in its submit cycle.
type LoginState int

const (
	LoginIdle LoginState = iota
	LoginSubmitting
	LoginNavigated
)

// LoginView drives the shared login/register form.
type LoginView struct {
	backend  Backend
	sessions SessionProvider
	logger   *slog.Logger

	Mode     Mode
	State    LoginState
	Error    string
	Redirect string
}

// NewLoginView creates a view in login mode.
func NewLoginView(b Backend, sp SessionProvider, logger *slog.Logger) *LoginView {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoginView{backend: b, sessions: sp, logger: logger}
}

// Submit sends the credentials to the endpoint selected by Mode. On success
// the session is saved and Redirect points at the admin view; on failure
// Error holds the banner text and the view returns to idle.
func (v *LoginView) Submit(ctx context.Context, creds model.Credentials) error {
	v.Error = ""
	if !creds.Complete() {
		v.Error = Message(ErrCredentialsRequired, v.Mode.fallback())
		return ErrCredentialsRequired
	}

	v.State = LoginSubmitting

	call := v.backend.Login
	if v.Mode == ModeRegister {
		call = v.backend.Register
	}

	resp, err := call(ctx, creds)
	if err != nil {
		v.State = LoginIdle
		v.Error = Message(err, v.Mode.fallback())
		v.logger.Warn("admin "+v.Mode.String()+" failed", "username", creds.Username, "error", err)
		return err
	}

	s := model.Session{AdminID: resp.AdminID, AdminName: resp.Username}
	if err := v.sessions.Save(ctx, s); err != nil {
		v.State = LoginIdle
		v.Error = msgSaveSession
		return fmt.Errorf("saving session: %w", err)
	}

	v.State = LoginNavigated
	v.Redirect = PathAdmin
	v.logger.Info("admin "+v.Mode.String()+" succeeded", "admin_id", resp.AdminID, "username", resp.Username)
	return nil
}
