// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/olegiv/blogadmin/internal/console"
	"github.com/olegiv/blogadmin/internal/model"
)

func postsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List, create, update and delete posts",
	}
	cmd.AddCommand(postsListCmd(a), postsCreateCmd(a), postsUpdateCmd(a), postsDeleteCmd(a))
	return cmd
}

func postsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.adminView(cmd.Context())
			if err != nil {
				return err
			}
			v.LoadPosts(cmd.Context())
			if err := bannerError(v); err != nil {
				return err
			}
			printPosts(cmd.OutOrStdout(), v.Snapshot().Posts)
			return nil
		},
	}
}

// postFlags are the draft fields settable from the command line.
type postFlags struct {
	draft       model.PostDraft
	contentFile string
}

func (f *postFlags) bind(cmd *cobra.Command, defaultType string) {
	fs := cmd.Flags()
	fs.StringVar(&f.draft.Type, "type", defaultType, "Post type")
	fs.StringVar(&f.draft.Title, "title", "", "Title")
	fs.StringVar(&f.draft.Content, "content", "", "Content (Markdown)")
	fs.StringVar(&f.contentFile, "content-file", "", "Read content from a file")
	fs.StringVar(&f.draft.Excerpt, "excerpt", "", "Excerpt")
	fs.StringVar(&f.draft.Author, "author", "", "Author")
	fs.StringVar(&f.draft.Tags, "tags", "", "Comma-separated tags")
	fs.StringVar(&f.draft.CoverURL, "cover-url", "", "Cover image URL")
	fs.StringVar(&f.draft.ImageURLs, "image-urls", "", "Comma-separated image URLs")
	fs.Int64Var(&f.draft.OwnerID, "owner-id", 0, "Owner user id")
}

// apply copies the flags the user set onto d.
func (f *postFlags) apply(cmd *cobra.Command, d *model.PostDraft) error {
	fs := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("type", &d.Type, f.draft.Type)
	set("title", &d.Title, f.draft.Title)
	set("content", &d.Content, f.draft.Content)
	set("excerpt", &d.Excerpt, f.draft.Excerpt)
	set("author", &d.Author, f.draft.Author)
	set("tags", &d.Tags, f.draft.Tags)
	set("cover-url", &d.CoverURL, f.draft.CoverURL)
	set("image-urls", &d.ImageURLs, f.draft.ImageURLs)
	if fs.Changed("owner-id") {
		d.OwnerID = f.draft.OwnerID
	}

	if f.contentFile != "" {
		data, err := os.ReadFile(f.contentFile)
		if err != nil {
			return fmt.Errorf("reading content file: %w", err)
		}
		d.Content = string(data)
	}
	return nil
}

func postsCreateCmd(a *app) *cobra.Command {
	var f postFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.adminView(cmd.Context())
			if err != nil {
				return err
			}

			d := model.NewPostDraft()
			d.Type = f.draft.Type
			if err := f.apply(cmd, &d); err != nil {
				return err
			}

			v.SetDraft(d)
			if err := v.SubmitPost(cmd.Context()); err != nil {
				return viewError(v, err)
			}

			printOK(cmd.OutOrStdout(), "Created post %q", d.Title)
			printPosts(cmd.OutOrStdout(), v.Snapshot().Posts)
			return nil
		},
	}

	f.bind(cmd, model.DefaultPostType)
	return cmd
}

func postsUpdateCmd(a *app) *cobra.Command {
	var f postFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a post; fields without a flag keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return err
			}

			v, err := a.adminView(cmd.Context())
			if err != nil {
				return err
			}
			v.LoadPosts(cmd.Context())
			if err := bannerError(v); err != nil {
				return err
			}

			post, ok := v.FindPost(id)
			if !ok {
				return fmt.Errorf("post %d not found", id)
			}
			v.BeginEdit(post)

			d := v.Snapshot().Draft
			if err := f.apply(cmd, &d); err != nil {
				return err
			}
			v.SetDraft(d)

			if err := v.SubmitPost(cmd.Context()); err != nil {
				return viewError(v, err)
			}

			printOK(cmd.OutOrStdout(), "Updated post %d", id)
			printPosts(cmd.OutOrStdout(), v.Snapshot().Posts)
			return nil
		},
	}

	f.bind(cmd, "")
	return cmd
}

func postsDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return err
			}

			v, err := a.adminView(cmd.Context())
			if err != nil {
				return err
			}

			ask := promptConfirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete post %d?", id))
			confirmed := yes
			var confirm console.Confirmer = func() bool {
				if !yes {
					confirmed = ask()
				}
				return confirmed
			}

			if err := v.DeletePost(cmd.Context(), id, confirm); err != nil {
				return viewError(v, err)
			}
			if !confirmed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Cancelled"))
				return nil
			}

			printOK(cmd.OutOrStdout(), "Deleted post %d", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func parsePostID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q", s)
	}
	return id, nil
}
