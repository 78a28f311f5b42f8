// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"encoding/json"
	"fmt"
	"testing"
)

func mustInit(t *testing.T) {
	t.Helper()
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
}

func TestInit(t *testing.T) {
	mustInit(t)

	for _, lang := range SupportedLanguages {
		if TranslationCount(lang) == 0 {
			t.Errorf("expected %s translations to be loaded", lang)
		}
	}
}

func TestT(t *testing.T) {
	mustInit(t)

	tests := []struct {
		lang     string
		key      string
		args     []any
		expected string
	}{
		{"en", "login.submit", nil, "Log in"},
		{"zh", "login.submit", nil, "登录"},
		{"en", "tab.posts", nil, "Posts"},
		{"zh", "tab.posts", nil, "文章管理"},
		{"en", "admin.signed_in_as", []any{"admin"}, "Signed in as admin"},
		{"zh", "posts.editing", []any{42}, "正在编辑文章 #42"},
		{"zh", "login failed", nil, "登录失败"},
		{"de", "login.submit", nil, "Log in"},
		{"en", "invalid credentials", nil, "invalid credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"_"+tt.key, func(t *testing.T) {
			if got := T(tt.lang, tt.key, tt.args...); got != tt.expected {
				t.Errorf("T(%q, %q, %v) = %q, want %q", tt.lang, tt.key, tt.args, got, tt.expected)
			}
		})
	}
}

func TestMatchLanguage(t *testing.T) {
	mustInit(t)

	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"zh", "zh"},
		{"en-US", "en"},
		{"zh-CN", "zh"},
		{"zh-Hans-CN", "zh"},
		{"de", "en"},
		{"invalid", "en"},
		{"", "en"},
		{"en-US, zh;q=0.9", "en"},
		{"zh-CN,zh;q=0.9,en;q=0.8", "zh"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MatchLanguage(tt.input); got != tt.expected {
				t.Errorf("MatchLanguage(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		lang     string
		expected bool
	}{
		{"en", true},
		{"zh", true},
		{"ZH", true},
		{"ru", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsSupported(tt.lang); got != tt.expected {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.lang, got, tt.expected)
		}
	}
}

func TestTranslationFilesConsistent(t *testing.T) {
	keys := make(map[string]map[string]bool)

	for _, lang := range SupportedLanguages {
		path := fmt.Sprintf("locales/%s/messages.json", lang)
		data, err := localesFS.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", path, err)
		}

		var msgFile MessageFile
		if err := json.Unmarshal(data, &msgFile); err != nil {
			t.Fatalf("failed to parse %s: %v", path, err)
		}
		if msgFile.Language != lang {
			t.Errorf("%s declares language %q", path, msgFile.Language)
		}

		keys[lang] = make(map[string]bool)
		for _, msg := range msgFile.Messages {
			if keys[lang][msg.ID] {
				t.Errorf("duplicate id %q in %s", msg.ID, lang)
			}
			keys[lang][msg.ID] = true
			if msg.Translation == "" {
				t.Errorf("empty translation for %q in %s", msg.ID, lang)
			}
		}
	}

	ref := keys[DefaultLanguage]
	for _, lang := range SupportedLanguages {
		for k := range ref {
			if !keys[lang][k] {
				t.Errorf("key %q missing in %s", k, lang)
			}
		}
		for k := range keys[lang] {
			if !ref[k] {
				t.Errorf("key %q in %s but not in %s", k, lang, DefaultLanguage)
			}
		}
	}
}
