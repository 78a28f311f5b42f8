// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olegiv/blogadmin/internal/console"
	"github.com/olegiv/blogadmin/internal/model"
)

// loginCmd builds the login or register command. Both submit the same
// credentials form; only the backend endpoint differs.
func loginCmd(a *app, mode console.Mode) *cobra.Command {
	var creds model.Credentials

	short := "Log in as an administrator"
	if mode == console.ModeRegister {
		short = "Register an administrator account and log in"
	}

	cmd := &cobra.Command{
		Use:   mode.String(),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			if creds.Username == "" {
				creds.Username = promptLine(in, cmd.OutOrStdout(), "Username: ")
			}
			if creds.Password == "" {
				creds.Password = promptLine(in, cmd.OutOrStdout(), "Password: ")
			}

			v := console.NewLoginView(a.backend, a.sessions, a.logger)
			v.Mode = mode
			if err := v.Submit(cmd.Context(), creds); err != nil {
				return errors.New(v.Error)
			}

			s, _ := a.sessions.Load(cmd.Context())
			printOK(cmd.OutOrStdout(), "Logged in as %s (id %d)", s.DisplayName(), s.AdminID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := console.NewAdminView(a.backend, a.sessions, a.logger)
			if err := v.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("clearing session: %w", err)
			}
			printOK(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, ok := a.sessions.Load(cmd.Context())
			if !ok {
				return errNotLoggedIn
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", s.DisplayName(), s.AdminID)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("session: "+a.sessions.Path()))
			return nil
		},
	}
}
