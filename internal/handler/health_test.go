// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/blogadmin/internal/version"
)

func TestHealthHandler_Health(t *testing.T) {
	h := NewHealthHandler(map[string]Pinger{
		"database": func(context.Context) error { return nil },
	}, &version.Info{Version: "v1.0.0"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.Health(w, req)

	assertStatus(t, w.Code, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q; want application/json", ct)
	}

	var resp HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q; want healthy", resp.Status)
	}
	if resp.Version != "v1.0.0" {
		t.Errorf("version = %q; want v1.0.0", resp.Version)
	}
	if c := resp.Checks["database"]; c.Status != "healthy" {
		t.Errorf("database check = %+v", c)
	}
}

func TestHealthHandler_Health_Degraded(t *testing.T) {
	h := NewHealthHandler(map[string]Pinger{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.Health(w, req)

	assertStatus(t, w.Code, http.StatusServiceUnavailable)

	var resp HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Status != "degraded" {
		t.Errorf("status = %q; want degraded", resp.Status)
	}
	if c := resp.Checks["redis"]; c.Status != "unhealthy" || c.Message != "connection refused" {
		t.Errorf("redis check = %+v", c)
	}
	if resp.Version != "dev" {
		t.Errorf("version = %q; want dev", resp.Version)
	}
}

func TestHealthHandler_ThroughRouter(t *testing.T) {
	app := newTestApp(t, newFakeBackend(), nil)

	w := app.do(http.MethodGet, RouteHealth, nil, nil)
	assertStatus(t, w.Code, http.StatusOK)
	if ops := app.backend.ops(); len(ops) != 0 {
		t.Errorf("health check issued backend calls: %v", ops)
	}
}
