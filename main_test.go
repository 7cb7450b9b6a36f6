package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMotionCommand(t *testing.T) {
	state := filepath.Join(t.TempDir(), "state.db")

	out, err := execute(t, "motion", "--state", state)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if out != "motion enabled\n" {
		t.Fatalf("fresh status = %q", out)
	}

	out, err = execute(t, "motion", "toggle", "--state", state)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if out != "motion disabled\n" {
		t.Fatalf("toggle = %q", out)
	}

	out, err = execute(t, "motion", "status", "--state", state)
	if err != nil {
		t.Fatalf("status after toggle: %v", err)
	}
	if out != "motion disabled\n" {
		t.Fatalf("status after toggle = %q", out)
	}
}

func TestMotionCommandEphemeral(t *testing.T) {
	out, err := execute(t, "motion", "toggle", "--ephemeral")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if out != "motion disabled\n" {
		t.Fatalf("toggle = %q", out)
	}
	out, err = execute(t, "motion", "--ephemeral")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if out != "motion enabled\n" {
		t.Fatalf("ephemeral preference leaked between runs: %q", out)
	}
}

func TestMotionCommandUnknownAction(t *testing.T) {
	_, err := execute(t, "motion", "flip", "--ephemeral")
	if err == nil || !strings.Contains(err.Error(), "unknown action") {
		t.Fatalf("err = %v, want unknown action", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "particles "+version) {
		t.Fatalf("version = %q", out)
	}
}
