// ABOUTME: Tests for the version command
// ABOUTME: Covers the full build stamp line and the --short flag

package commands

import (
	"bytes"
	"strings"
	"testing"
)

func stampVersion(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := buildVersion, buildCommit, buildDate
	t.Cleanup(func() {
		buildVersion, buildCommit, buildDate = origVersion, origCommit, origDate
	})
	SetVersion(version, commit, date)
}

func TestNewVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()

	if cmd.Use != "version" {
		t.Errorf("Use = %q, want %q", cmd.Use, "version")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Flags().Lookup("short") == nil {
		t.Error("expected a --short flag")
	}
}

func TestVersionCmd_Output(t *testing.T) {
	stampVersion(t, "1.2.3", "abc123", "2026-01-31")

	cmd := NewVersionCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "studyengine 1.2.3 (commit abc123, built 2026-01-31)\n"
	if output.String() != want {
		t.Errorf("output = %q, want %q", output.String(), want)
	}
}

func TestVersionCmd_Short(t *testing.T) {
	stampVersion(t, "2.0.0-beta", "deadbeef", "2026-06-15")

	cmd := NewVersionCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"--short"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if strings.TrimSpace(output.String()) != "2.0.0-beta" {
		t.Errorf("output = %q, want only the version number", output.String())
	}
}
