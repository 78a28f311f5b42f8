// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/olegiv/blogadmin/internal/console"
	"github.com/olegiv/blogadmin/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func printOK(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, okStyle.Render(fmt.Sprintf(format, args...)))
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func printUsers(w io.Writer, users []model.AdminUser) {
	_, _ = fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Users (%d)", len(users))))
	if len(users) == 0 {
		_, _ = fmt.Fprintln(w, mutedStyle.Render("No users yet."))
		return
	}

	t := newTable("ID", "Username", "Role")
	for _, u := range users {
		role := "user"
		if u.IsAdmin {
			role = "admin"
		}
		t.Row(strconv.FormatInt(u.ID, 10), u.Username, role)
	}
	_, _ = fmt.Fprintln(w, t.String())
}

func printPosts(w io.Writer, posts []model.Post) {
	_, _ = fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Posts (%d)", len(posts))))
	if len(posts) == 0 {
		_, _ = fmt.Fprintln(w, mutedStyle.Render("No posts yet."))
		return
	}

	t := newTable("ID", "Type", "Title", "Author", "Owner", "Created")
	for _, p := range posts {
		t.Row(
			strconv.FormatInt(p.ID, 10),
			p.Type,
			truncate(p.Title, 48),
			p.Author,
			strconv.FormatInt(p.OwnerID, 10),
			p.CreatedAt,
		)
	}
	_, _ = fmt.Fprintln(w, t.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// promptConfirm returns a Confirmer asking question on out and reading the
// answer from in. Only y or yes agrees.
func promptConfirm(in io.Reader, out io.Writer, question string) console.Confirmer {
	return func() bool {
		_, _ = fmt.Fprint(out, question+" [y/N] ")
		answer, _ := bufio.NewReader(in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}

// promptLine reads one line from in after printing label.
func promptLine(in *bufio.Reader, out io.Writer, label string) string {
	_, _ = fmt.Fprint(out, label)
	line, _ := in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}
