package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command against a test server with an isolated state
// dir, returning stdout.
func execute(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	full := append([]string{"--dir", t.TempDir()}, args...)
	if server != nil {
		full = append([]string{"--server", server.URL}, full...)
	}
	cmd.SetArgs(full)
	err := cmd.Execute()
	return out.String(), err
}

func TestAdsList_JSONEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/ads" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"ad-1","title":"Promo","targetUrl":"https://x","status":"active",
			"impressions":10,"clicks":2,"createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}]`))
	}))
	defer server.Close()

	out, err := execute(t, server, "ads", "list")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var envelope struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &envelope); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].ID != "ad-1" {
		t.Fatalf("unexpected data: %s", out)
	}
}

func TestAdsDelete_TableFormatStillSucceeds(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	out, err := execute(t, server, "ads", "delete", "ad-1", "--format", "table")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Fatalf("method = %s", gotMethod)
	}
	if !strings.Contains(out, "ad-1") {
		t.Fatalf("expected confirmation output; got %q", out)
	}
}

func TestKYCApprove_PostsDecisionWithNote(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"kyc-9","status":"approved","userId":"u1","userEmail":"a@b.c",
			"fullName":"Ada","documentType":"passport","documentUrl":"https://d","submittedAt":"2026-01-01T00:00:00Z"}`))
	}))
	defer server.Close()

	_, err := execute(t, server, "kyc", "approve", "kyc-9", "--note", "docs verified")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if gotPath != "/api/admin/kyc/kyc-9/approve" {
		t.Fatalf("path = %s", gotPath)
	}
	if gotBody["note"] != "docs verified" {
		t.Fatalf("note = %v", gotBody["note"])
	}
}

func TestUsersUpdate_RequiresAChange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request should be made, got %s %s", r.Method, r.URL.Path)
	}))
	defer server.Close()

	_, err := execute(t, server, "users", "update", "u-1")
	if err == nil || !strings.Contains(err.Error(), "nothing to update") {
		t.Fatalf("err = %v", err)
	}
}

func TestUsersUpdate_SendsOnlyChangedFlags(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"u-1","email":"a@b.c","role":"moderator","tokenBalance":0,
			"suspended":false,"createdAt":"2026-01-01T00:00:00Z"}`))
	}))
	defer server.Close()

	if _, err := execute(t, server, "users", "update", "u-1", "--role", "moderator"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if gotBody["role"] != "moderator" {
		t.Fatalf("role = %v", gotBody["role"])
	}
	if _, present := gotBody["suspended"]; present {
		t.Fatalf("suspended must be omitted when the flag was not passed: %v", gotBody)
	}
}

func TestSecretsSet_ReadsValueFromStdin(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"key":"API_KEY","valueMasked":"se•••","updatedAt":"2026-01-01T00:00:00Z"}`))
	}))
	defer server.Close()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader("secret-value\n"))
	cmd.SetArgs([]string{"--server", server.URL, "--dir", t.TempDir(),
		"secrets", "set", "API_KEY", "--value-file", "-"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if gotBody["value"] != "secret-value" {
		t.Fatalf("value = %v", gotBody["value"])
	}
}

func TestSecretsSet_RejectsBadKey(t *testing.T) {
	_, err := execute(t, nil, "secrets", "set", "lower-case", "--value", "x")
	if err == nil || !strings.Contains(err.Error(), "UPPER_SNAKE_CASE") {
		t.Fatalf("err = %v", err)
	}
}

func TestConfigSetServer_Persists(t *testing.T) {
	dir := t.TempDir()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--dir", dir, "config", "set-server", "https://api.example.com/"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var cfg struct {
		ServerURL string `json:"serverUrl"`
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.ServerURL != "https://api.example.com" {
		t.Fatalf("serverUrl = %q (trailing slash should be trimmed)", cfg.ServerURL)
	}
}

func TestMissingServer_FailsWithHint(t *testing.T) {
	_, err := execute(t, nil, "ads", "list")
	if err == nil || !strings.Contains(err.Error(), "no server configured") {
		t.Fatalf("err = %v", err)
	}
}
