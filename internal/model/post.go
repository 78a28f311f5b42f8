// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strings"

// DefaultPostType is the category label the backend uses for ordinary articles.
const DefaultPostType = "文章"

// Post is a blog post as returned by the backend.
type Post struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Excerpt   string  `json:"excerpt"`
	Author    string  `json:"author"`
	Tags      *string `json:"tags,omitempty"`
	CoverURL  *string `json:"cover_url,omitempty"`
	ImageURLs *string `json:"image_urls,omitempty"`
	OwnerID   int64   `json:"owner_id"`
	CreatedAt string  `json:"created_at"`
}

// PostCreate is the body of POST /admin/posts.
type PostCreate struct {
	Type      string  `json:"type,omitempty"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Excerpt   string  `json:"excerpt"`
	Author    string  `json:"author"`
	Tags      *string `json:"tags,omitempty"`
	CoverURL  *string `json:"cover_url,omitempty"`
	ImageURLs *string `json:"image_urls,omitempty"`
	OwnerID   *int64  `json:"owner_id,omitempty"`
}

// PostUpdate is the body of PUT /admin/posts/{id}. Nil fields are left
// unchanged by the backend.
type PostUpdate struct {
	Type      *string `json:"type,omitempty"`
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	Excerpt   *string `json:"excerpt,omitempty"`
	Author    *string `json:"author,omitempty"`
	Tags      *string `json:"tags,omitempty"`
	CoverURL  *string `json:"cover_url,omitempty"`
	ImageURLs *string `json:"image_urls,omitempty"`
	OwnerID   *int64  `json:"owner_id,omitempty"`
}

// PostDraft is the edit buffer behind the post form. When EditingID is
// non-zero, submitting the draft updates that post instead of creating one.
type PostDraft struct {
	Type      string
	Title     string
	Content   string
	Excerpt   string
	Author    string
	Tags      string
	CoverURL  string
	ImageURLs string
	OwnerID   int64
	EditingID int64
}

// NewPostDraft returns an empty draft with the default post type.
func NewPostDraft() PostDraft {
	return PostDraft{Type: DefaultPostType}
}

// DraftFromPost copies the editable fields of p into a draft targeting p.
func DraftFromPost(p Post) PostDraft {
	return PostDraft{
		Type:      p.Type,
		Title:     p.Title,
		Content:   p.Content,
		Excerpt:   p.Excerpt,
		Author:    p.Author,
		Tags:      deref(p.Tags),
		CoverURL:  deref(p.CoverURL),
		ImageURLs: deref(p.ImageURLs),
		OwnerID:   p.OwnerID,
		EditingID: p.ID,
	}
}

// Editing reports whether the draft targets an existing post.
func (d PostDraft) Editing() bool {
	return d.EditingID > 0
}

// Payload builds the create body. Blank optional fields are omitted rather
// than sent as empty strings.
func (d PostDraft) Payload() PostCreate {
	pc := PostCreate{
		Type:      d.Type,
		Title:     d.Title,
		Content:   d.Content,
		Excerpt:   d.Excerpt,
		Author:    d.Author,
		Tags:      optional(d.Tags),
		CoverURL:  optional(d.CoverURL),
		ImageURLs: optional(d.ImageURLs),
	}
	if d.OwnerID > 0 {
		owner := d.OwnerID
		pc.OwnerID = &owner
	}
	return pc
}

// UpdatePayload builds the update body carrying every field of the draft,
// with the same blank-field normalization as Payload.
func (d PostDraft) UpdatePayload() PostUpdate {
	pc := d.Payload()
	pu := PostUpdate{
		Title:     &pc.Title,
		Content:   &pc.Content,
		Excerpt:   &pc.Excerpt,
		Author:    &pc.Author,
		Tags:      pc.Tags,
		CoverURL:  pc.CoverURL,
		ImageURLs: pc.ImageURLs,
		OwnerID:   pc.OwnerID,
	}
	if pc.Type != "" {
		pu.Type = &pc.Type
	}
	return pu
}

// optional returns nil for blank or whitespace-only values and a pointer to
// the untrimmed value otherwise.
func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
