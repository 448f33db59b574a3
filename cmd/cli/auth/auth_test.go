package auth

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

func TestLoginThenLogout(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	t.Setenv("TVPLUS_TOKEN_FILE", tokenFile)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "alice" || body["password"] != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"incorrect username or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok-abc","token_type":"bearer"}`))
	}))
	defer srv.Close()
	t.Setenv("TVPLUS_API_URL", srv.URL)

	cmd := loginCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--username", "alice", "--password", "pw"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("login: %v", err)
	}
	saved, err := os.ReadFile(tokenFile)
	if err != nil || string(saved) != "tok-abc" {
		t.Fatalf("saved token: %q err=%v", saved, err)
	}

	cmd = logoutCmd()
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := os.Stat(tokenFile); !os.IsNotExist(err) {
		t.Errorf("token file should be removed, stat err=%v", err)
	}
	if !strings.Contains(out.String(), "Logged out") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	t.Setenv("TVPLUS_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"incorrect username or password"}`))
	}))
	defer srv.Close()
	t.Setenv("TVPLUS_API_URL", srv.URL)

	cmd := loginCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--username", "alice", "--password", "nope"})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "incorrect username or password") {
		t.Errorf("expected credential error, got %v", err)
	}
}

func TestMe_Table(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(tokenFile, []byte("tok\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TVPLUS_TOKEN_FILE", tokenFile)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","username":"alice","email":"alice@example.com","is_super_user":false,"created_at":"2024-01-02T03:04:05"}`))
	}))
	defer srv.Close()
	t.Setenv("TVPLUS_API_URL", srv.URL)

	cmd := meCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("me: %v", err)
	}
	if !strings.Contains(out.String(), "alice@example.com") {
		t.Errorf("unexpected output: %s", out.String())
	}
}
