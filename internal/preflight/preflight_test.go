package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"amendo/internal/services/amendo"
	"amendo/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func newServerClient(t *testing.T, status int) (*amendo.Client, *string) {
	t.Helper()
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(amendo.HeaderAPIKey)
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return amendo.NewClient(amendo.Config{BaseURL: srv.URL, APIKey: "good-key"}), &gotKey
}

func TestCheckServer_OK(t *testing.T) {
	client, gotKey := newServerClient(t, http.StatusOK)
	result := CheckServer(context.Background(), client)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if *gotKey != "good-key" {
		t.Fatalf("api key header = %q", *gotKey)
	}
}

func TestCheckServer_NotFoundStillReachable(t *testing.T) {
	client, _ := newServerClient(t, http.StatusNotFound)
	result := CheckServer(context.Background(), client)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckServer_BadKey(t *testing.T) {
	client, _ := newServerClient(t, http.StatusUnauthorized)
	result := CheckServer(context.Background(), client)
	if result.Passed {
		t.Fatal("expected failure for bad key")
	}
	if !strings.Contains(result.Detail, "auth failed") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckServer_ServerError(t *testing.T) {
	client, _ := newServerClient(t, http.StatusBadGateway)
	result := CheckServer(context.Background(), client)
	if result.Passed || !strings.Contains(result.Detail, "server error") {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCheckServer_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	result := CheckServer(context.Background(), amendo.NewClient(amendo.Config{BaseURL: url}))
	if result.Passed {
		t.Fatal("expected failure for closed server")
	}
}

func TestCheckServer_MissingURL(t *testing.T) {
	result := CheckServer(context.Background(), amendo.NewClient(amendo.Config{}))
	if result.Passed || result.Detail != "missing url" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := Run(context.Background(), cfg, nil)
	if len(results) != 2 {
		t.Fatalf("expected 2 results without download dir or client, got %d", len(results))
	}
	if !AllPassed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}

	if err := os.MkdirAll(cfg.Paths.DownloadDir, 0o755); err != nil {
		t.Fatal(err)
	}
	client, _ := newServerClient(t, http.StatusOK)
	results = Run(context.Background(), cfg, client)
	if len(results) != 4 || !AllPassed(results) {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestRunNilConfig(t *testing.T) {
	if results := Run(context.Background(), nil, nil); results != nil {
		t.Fatalf("expected nil results, got %+v", results)
	}
}
