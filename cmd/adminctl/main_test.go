package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketadmin"
	"github.com/dmitrymomot/marketadmin/pkg/jwt/jwttest"
	"github.com/dmitrymomot/marketadmin/pkg/storage"
)

type fakeBackend struct {
	role      string
	token     string
	rejected  string
	rejectMsg map[string]any
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["password"] != "secret" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"token": b.token,
			"user":  map[string]any{"_id": "u1", "name": "Ann", "email": in["email"], "role": b.role},
		})
	})
	r.Get("/admin/products", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+b.token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not authorized"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"products": []map[string]any{
				{"_id": "p1", "title": "Icons", "category": "design", "price": 9.5, "active": true},
				{"_id": "p2", "title": "Fonts", "category": "design", "price": 4, "active": false},
			},
			"total": 2,
		})
	})
	r.Get("/admin/pending-sellers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"sellers": []map[string]any{
			{"_id": "s1", "name": "Zed", "email": "zed@x.io", "createdAt": "2024-01-02T00:00:00Z"},
			{"_id": "s2", "name": "amy", "email": "amy@x.io", "createdAt": "2024-03-02T00:00:00Z"},
		}})
	})
	r.Put("/admin/reject-seller/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.rejected = chi.URLParam(r, "id")
		_ = json.NewDecoder(r.Body).Decode(&b.rejectMsg)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	r.Get("/admin/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token revoked"})
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type harness struct {
	t   *testing.T
	cfg marketadmin.Config
}

func newHarness(t *testing.T, b *fakeBackend) *harness {
	t.Helper()
	srv := httptest.NewServer(b.handler(t))
	t.Cleanup(srv.Close)
	return &harness{t: t, cfg: marketadmin.Config{
		BaseURL:   srv.URL,
		LoginPath: "/login",
		Env:       "production",
		LogLevel:  "error",
		Storage: storage.Config{
			Driver: storage.DriverFile,
			File:   filepath.Join(t.TempDir(), "session.json"),
		},
	}}
}

func (h *harness) run(stdin string, args ...string) (int, string, string) {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(h.t.Context(), h.cfg, args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	h := newHarness(t, &fakeBackend{})

	code, _, stderr := h.run("")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "commands:")

	code, _, stderr = h.run("", "frobnicate")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `unknown command "frobnicate"`)

	code, _, stderr = h.run("", "-o", "xml", "whoami")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `unknown output format "xml"`)
}

func TestRun_SessionLifecycle(t *testing.T) {
	b := &fakeBackend{role: "admin", token: jwttest.Valid(t, "u1", "admin")}
	h := newHarness(t, b)

	code, stdout, stderr := h.run("", "-o", "json", "login", "-email", "ann@x.io", "-password", "secret")
	require.Equal(t, exitOK, code, stderr)
	var user map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &user))
	assert.Equal(t, "u1", user["id"])
	assert.Equal(t, "admin", user["role"])

	code, stdout, _ = h.run("", "-o", "yaml", "whoami")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "email: ann@x.io")

	code, stdout, _ = h.run("", "-o", "json", "products", "-status", "active")
	require.Equal(t, exitOK, code)
	var page map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &page))
	assert.EqualValues(t, 2, page["total"])

	code, stdout, _ = h.run("", "products")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "Icons")
	assert.Contains(t, stdout, "$9.50")
	assert.Contains(t, stdout, "page 1, 2 of 2 products")

	code, stdout, _ = h.run("", "-o", "json", "products", "-categories")
	require.Equal(t, exitOK, code)
	assert.JSONEq(t, `["design"]`, stdout)

	code, _, _ = h.run("", "logout")
	require.Equal(t, exitOK, code)

	code, _, stderr = h.run("", "products")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "error: session: not signed in")
}

func TestRun_LoginPasswordFromStdin(t *testing.T) {
	b := &fakeBackend{role: "admin", token: jwttest.Valid(t, "u1", "admin")}
	h := newHarness(t, b)

	code, _, stderr := h.run("secret\n", "login", "-email", "ann@x.io")
	require.Equal(t, exitOK, code, stderr)

	code, _, stderr = h.run("wrong\n", "login", "-email", "ann@x.io")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "error: Invalid credentials")
}

func TestRun_LoginNonAdmin(t *testing.T) {
	b := &fakeBackend{role: "seller", token: jwttest.Valid(t, "u1", "seller")}
	h := newHarness(t, b)

	code, _, stderr := h.run("", "login", "-email", "ann@x.io", "-password", "secret")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "admin access only")

	code, _, _ = h.run("", "whoami")
	assert.Equal(t, exitError, code)
}

func TestRun_Sellers(t *testing.T) {
	b := &fakeBackend{role: "admin", token: jwttest.Valid(t, "u1", "admin")}
	h := newHarness(t, b)
	code, _, _ := h.run("", "login", "-email", "ann@x.io", "-password", "secret")
	require.Equal(t, exitOK, code)

	code, stdout, _ := h.run("", "-o", "json", "sellers", "-sort", "name")
	require.Equal(t, exitOK, code)
	var sellers []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &sellers))
	require.Len(t, sellers, 2)
	assert.Equal(t, "s2", sellers[0]["_id"])

	code, _, _ = h.run("", "reject-seller", "-reason", "incomplete", "s1")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "s1", b.rejected)
	assert.Equal(t, map[string]any{"reason": "incomplete"}, b.rejectMsg)

	code, _, stderr := h.run("", "reject-seller")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "usage: adminctl reject-seller")
}

func TestRun_Unauthorized(t *testing.T) {
	b := &fakeBackend{role: "admin", token: jwttest.Valid(t, "u1", "admin")}
	h := newHarness(t, b)
	code, _, _ := h.run("", "login", "-email", "ann@x.io", "-password", "secret")
	require.Equal(t, exitOK, code)

	code, _, stderr := h.run("", "users")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "session ended, run `adminctl login`")
	assert.Contains(t, stderr, "error: Token revoked")

	code, _, _ = h.run("", "whoami")
	assert.Equal(t, exitError, code)
}
