package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"amendo/internal/services"
	"amendo/internal/testsupport"
)

func TestDownloadToExplicitTarget(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteResultFile(t, env.resultsDir, "out.pdf", 2048)
	target := filepath.Join(env.baseDir, "local", "copy.pdf")

	out, _, err := runCLI(t, []string{"download", env.server.URL + "/results/out.pdf", target}, env.configPath)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	requireContains(t, out, "Downloaded 2048 bytes")
	data, err := os.ReadFile(target)
	if err != nil || len(data) != 2048 {
		t.Fatalf("unexpected target: %d bytes, %v", len(data), err)
	}
	for i, b := range data {
		if b != testsupport.ResultByte(i) {
			t.Fatalf("byte %d = %#x, want %#x", i, b, testsupport.ResultByte(i))
		}
	}
}

func TestDownloadDefaultsToDownloadDir(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteResultFile(t, env.resultsDir, "report.xml", 10)

	if _, _, err := runCLI(t, []string{"download", env.server.URL + "/results/report.xml"}, env.configPath); err != nil {
		t.Fatalf("download: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.DownloadDir, "report.xml")); err != nil {
		t.Fatalf("expected file in download dir: %v", err)
	}
}

func TestDownloadErrors(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"download", "not a url"}, env.configPath); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, _, err := runCLI(t, []string{"download", env.server.URL + "/results/missing.pdf"}, env.configPath)
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	requireContains(t, out, "== Environment ==")
	requireContains(t, out, "State directory")
	requireContains(t, out, "Amendo server")
	requireContains(t, out, "none recorded")
	requireContains(t, out, "Watcher:")
	requireContains(t, out, "idle")
}

func TestStatusCommandUnreachableServer(t *testing.T) {
	env := setupCLITestEnv(t)
	env.server.Close()

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err == nil {
		t.Fatal("expected status to fail when the server is down")
	}
	requireContains(t, out, "[ERROR]")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.server.URL)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected existing-file error, got %v", err)
	}
}

func TestInvalidConfigIsConfigurationError(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[polling]\nattempts = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := runCLI(t, []string{"jobs"}, env.configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
