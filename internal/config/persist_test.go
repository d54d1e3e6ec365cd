package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestValidateBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission-bit checks are unix-only")
	}

	dir := t.TempDir()

	execPath := filepath.Join(dir, "sbatch")
	if err := os.WriteFile(execPath, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("write: %v", err)
	}
	plainPath := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(plainPath, []byte("hi"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"empty", "", false},
		{"executable file", execPath, true},
		{"non-executable file", plainPath, false},
		{"missing file", filepath.Join(dir, "nope"), false},
		{"not in PATH", "definitely-not-a-real-binary-xyz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateBinary(tt.path); got != tt.want {
				t.Errorf("ValidateBinary(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestGetUserConfigPath(t *testing.T) {
	path, err := GetUserConfigPath()
	if err != nil {
		t.Fatalf("GetUserConfigPath: %v", err)
	}
	if !strings.Contains(path, "slurmtail") {
		t.Errorf("config path %q does not mention slurmtail", path)
	}
	if !strings.HasSuffix(path, ConfigFilename+"."+ConfigType) {
		t.Errorf("config path %q has wrong filename", path)
	}
}

func TestLoadDefaults(t *testing.T) {
	LoadDefaults()

	if Global.TailLines != 150 {
		t.Errorf("TailLines = %d, want 150", Global.TailLines)
	}
	if Global.FileTimeout.Minutes() != 2 {
		t.Errorf("FileTimeout = %s, want 2m", Global.FileTimeout)
	}
	if Global.IdleTimeout.Minutes() != 2 {
		t.Errorf("IdleTimeout = %s, want 2m", Global.IdleTimeout)
	}
	if Global.PollInterval.Seconds() != 1 {
		t.Errorf("PollInterval = %s, want 1s", Global.PollInterval)
	}
	if Global.Version != VERSION {
		t.Errorf("Version = %q, want %q", Global.Version, VERSION)
	}
}
