// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command blogadminctl manages blog users and posts from the terminal. It
// drives the same login and admin views as the web console and keeps the
// session in a YAML file under the user config directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/olegiv/blogadmin/internal/api"
	"github.com/olegiv/blogadmin/internal/config"
	"github.com/olegiv/blogadmin/internal/console"
	"github.com/olegiv/blogadmin/internal/logging"
	"github.com/olegiv/blogadmin/internal/session"
	"github.com/olegiv/blogadmin/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

const appName = "blogadminctl"

var errNotLoggedIn = errors.New("not logged in; run \"blogadminctl login\" first")

// app carries the dependencies shared by every command.
type app struct {
	apiURL      string
	sessionFile string
	logLevel    string

	logger   *slog.Logger
	backend  console.Backend
	sessions *session.FileStore
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		stop()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Manage blog users and posts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "Backend base URL (default $BLOGADMIN_API_BASE_URL or "+config.DefaultAPIBaseURL+")")
	cmd.PersistentFlags().StringVar(&a.sessionFile, "session-file", "", "Session file (default $BLOGADMIN_SESSION_FILE or the user config dir)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		loginCmd(a, console.ModeLogin),
		loginCmd(a, console.ModeRegister),
		logoutCmd(a),
		whoamiCmd(a),
		usersCmd(a),
		postsCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), info.Long(appName))
			},
		},
	)

	return cmd
}

// setup resolves configuration with flags taking precedence over the
// environment.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIBaseURL = a.apiURL
	}
	if a.sessionFile != "" {
		cfg.SessionFile = a.sessionFile
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	a.logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	a.backend = api.New(cfg.APIBaseURL, api.WithLogger(a.logger))

	path := cfg.SessionFile
	if path == "" {
		if path, err = session.DefaultFilePath(); err != nil {
			return fmt.Errorf("locating session file: %w", err)
		}
	}
	a.sessions = session.NewFileStore(path)
	return nil
}

// adminView returns a view bound to the stored session.
func (a *app) adminView(ctx context.Context) (*console.AdminView, error) {
	v := console.NewAdminView(a.backend, a.sessions, a.logger)
	if !v.Guard(ctx) {
		return nil, errNotLoggedIn
	}
	return v, nil
}

// bannerError turns the view's banner into an error. An empty banner means
// success.
func bannerError(v *console.AdminView) error {
	if msg := v.Snapshot().Error; msg != "" {
		return errors.New(msg)
	}
	return nil
}

// viewError reports a failed view operation by its banner text, falling
// back to err itself.
func viewError(v *console.AdminView, err error) error {
	if bErr := bannerError(v); bErr != nil {
		return bErr
	}
	return err
}
