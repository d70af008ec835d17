package main

import (
	"errors"
	"testing"

	"amendo/internal/services"
	"amendo/internal/ticket"
)

func TestTicketRender(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeTicket(t, env, "job.toml", exampleTicket)

	out, _, err := runCLI(t, []string{"ticket", "render", path}, env.configPath)
	if err != nil {
		t.Fatalf("ticket render: %v", err)
	}
	requireContains(t, out, `<?xml version="1.0" standalone="yes"?>`)
	requireContains(t, out, `<Job Name="Test 1">`)
	requireContains(t, out, `<Priority>60</Priority>`)
	requireContains(t, out, `<File DownloadUri="https://example.com/b.pdf">`)
	requireContains(t, out, `<AssemblyLineReference>Test-AssemblyLine</AssemblyLineReference>`)
	if len(env.server.Tickets()) != 0 {
		t.Fatal("render must not contact the server")
	}
}

func TestTicketRenderUsesConfiguredAssemblyLineAndClientID(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Amendo.AssemblyLine = "From-Config"
	env.cfg.Client.ID = "Nightly"
	writeTestConfig(t, env.configPath, env.cfg)
	path := writeTicket(t, env, "bare.toml", "[[files]]\npath = \"/data/in/x.pdf\"\n")

	out, _, err := runCLI(t, []string{"ticket", "render", path}, env.configPath)
	if err != nil {
		t.Fatalf("ticket render: %v", err)
	}
	requireContains(t, out, `<AssemblyLineReference>From-Config</AssemblyLineReference>`)
	requireContains(t, out, `<Job Name="Nightly-`)
}

func TestTicketRenderRejectsIncompleteDefinition(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeTicket(t, env, "bad.toml", "name = \"x\"\n")

	_, _, err := runCLI(t, []string{"ticket", "render", path}, env.configPath)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if services.ExitCode(err) != 2 {
		t.Fatalf("exit code = %d, want 2", services.ExitCode(err))
	}
	if errors.Is(err, ticket.ErrTicketIncomplete) {
		t.Fatal("definition errors should be reported before rendering")
	}
}
