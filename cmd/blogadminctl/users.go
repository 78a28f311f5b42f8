// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"github.com/spf13/cobra"

	"github.com/olegiv/blogadmin/internal/console"
)

func usersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List and create users",
	}
	cmd.AddCommand(usersListCmd(a), usersCreateCmd(a))
	return cmd
}

func usersListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.adminView(cmd.Context())
			if err != nil {
				return err
			}
			v.LoadUsers(cmd.Context())
			if err := bannerError(v); err != nil {
				return err
			}
			printUsers(cmd.OutOrStdout(), v.Snapshot().Users)
			return nil
		},
	}
}

func usersCreateCmd(a *app) *cobra.Command {
	var form console.UserForm

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.adminView(cmd.Context())
			if err != nil {
				return err
			}

			v.SetUserForm(form)
			if err := v.CreateUser(cmd.Context()); err != nil {
				return viewError(v, err)
			}

			printOK(cmd.OutOrStdout(), "Created user %s", form.Username)
			printUsers(cmd.OutOrStdout(), v.Snapshot().Users)
			return nil
		},
	}

	cmd.Flags().StringVarP(&form.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "Password")
	cmd.Flags().BoolVar(&form.IsAdmin, "admin", false, "Grant administrator rights")
	return cmd
}
