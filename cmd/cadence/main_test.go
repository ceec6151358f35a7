package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := `
[paths]
data_dir = "` + filepath.Join(base, "data") + `"
log_dir = "` + filepath.Join(base, "logs") + `"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Errorf("output should name the target path: %s", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[scoring]") {
		t.Errorf("sample config missing scoring section")
	}
}

func TestConfigInitRefusesExisting(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if _, err := runCommand(t, "config", "init", "--path", target); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("second init without --overwrite must fail")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("init with --overwrite: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfgPath := writeTestConfig(t)
	out, err := runCommand(t, "config", "validate", "--path", cfgPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestConfigValidateRejectsBadWeights(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := `
[scoring]
title_weight = 0.5
artist_weight = 0.4
duration_weight = 0.4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := runCommand(t, "config", "validate", "--path", path); err == nil {
		t.Fatal("invalid weights must fail validation")
	}
}

func TestLibraryAddListRemove(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := runCommand(t, "-c", cfgPath, "library", "add", "/music/strobe.flac",
		"--title", "Strobe", "--artist", "deadmau5", "--duration", "634")
	if err != nil {
		t.Fatalf("library add: %v", err)
	}

	out, err := runCommand(t, "-c", cfgPath, "library", "list")
	if err != nil {
		t.Fatalf("library list: %v", err)
	}
	if !strings.Contains(out, "Strobe") || !strings.Contains(out, "deadmau5") {
		t.Errorf("list missing track: %s", out)
	}

	if _, err := runCommand(t, "-c", cfgPath, "library", "remove", "/music/strobe.flac"); err != nil {
		t.Fatalf("library remove: %v", err)
	}
	out, err = runCommand(t, "-c", cfgPath, "library", "list")
	if err != nil {
		t.Fatalf("library list after remove: %v", err)
	}
	if !strings.Contains(out, "Library is empty") {
		t.Errorf("library should be empty: %s", out)
	}
}

func TestLibraryHistoryEmpty(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if _, err := runCommand(t, "-c", cfgPath, "library", "add", "/music/a.flac", "--title", "A"); err != nil {
		t.Fatalf("library add: %v", err)
	}
	out, err := runCommand(t, "-c", cfgPath, "library", "history", "/music/a.flac")
	if err != nil {
		t.Fatalf("library history: %v", err)
	}
	if !strings.Contains(out, "No tag writes") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestLibraryRemoveMissing(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if _, err := runCommand(t, "-c", cfgPath, "library", "remove", "/music/nope.flac"); err == nil {
		t.Fatal("removing an unknown track must fail")
	}
}

func TestMatchRequiresTitle(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if _, err := runCommand(t, "-c", cfgPath, "match"); err == nil {
		t.Fatal("match without --title must fail")
	}
}

func TestProvidersCommand(t *testing.T) {
	cfgPath := writeTestConfig(t)
	out, err := runCommand(t, "-c", cfgPath, "providers")
	if err != nil {
		t.Fatalf("providers: %v", err)
	}
	if !strings.Contains(out, "beatport") || !strings.Contains(out, "traxsource") {
		t.Errorf("providers output missing sources: %s", out)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "-"},
		{59, "0:59"},
		{634, "10:34"},
		{3723, "1:02:03"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.seconds); got != tt.want {
			t.Errorf("formatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
