package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("DATABASE_URL", "memory:")
	t.Setenv("BUDGET_FILE", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")
}

func TestRunReturnsExitCodeOnStartupFailure(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "invalid config", env: map[string]string{"RATE_LIMIT_PER_MINUTE": "-1"}},
		{name: "missing budget file", env: map[string]string{"BUDGET_FILE": filepath.Join(t.TempDir(), "missing.yaml")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setTestEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			var out bytes.Buffer
			if code := run([]string{"-batch", "-output", t.TempDir()}, strings.NewReader(""), &out); code != 1 {
				t.Fatalf("expected exit code 1, got %d", code)
			}
		})
	}
}

func TestRunBatch(t *testing.T) {
	setTestEnv(t)
	dir := t.TempDir()
	var out bytes.Buffer
	if code := run([]string{"-batch", "-seed-employees", "4", "-output", dir}, strings.NewReader(""), &out); code != 0 {
		t.Fatalf("expected exit code 0, got %d:\n%s", code, out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "organization_report.pdf")); err != nil {
		t.Fatalf("expected organization report: %v", err)
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	setTestEnv(t)
	if code := run([]string{"-nope"}, strings.NewReader(""), &bytes.Buffer{}); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestRunMenuExits(t *testing.T) {
	setTestEnv(t)
	var out bytes.Buffer
	if code := run([]string{"-seed-employees", "3", "-output", t.TempDir()}, strings.NewReader("1\n0\n"), &out); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "Department Analysis") || !strings.Contains(out.String(), "Goodbye") {
		t.Fatalf("unexpected menu output:\n%s", out.String())
	}
}
