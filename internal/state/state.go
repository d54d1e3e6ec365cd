// Package state persists the link between a submitted job and its log
// file, so a later invocation can pick the follow back up.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/adamweingram/slurmtail/internal/config"
	"github.com/adamweingram/slurmtail/internal/utils"
)

var (
	// ErrNoResumeFile indicates no prior submission was recorded here
	ErrNoResumeFile = errors.New("no resume file found")

	// ErrMalformedResumeFile indicates the resume file exists but cannot be parsed
	ErrMalformedResumeFile = errors.New("resume file is malformed")
)

// Handle records one submission. It is written next to wherever the
// submit command ran, one handle per directory.
type Handle struct {
	JobID       string    `toml:"job_id"`
	JobName     string    `toml:"job_name,omitempty"`
	Scheduler   string    `toml:"scheduler"`
	Script      string    `toml:"script"`
	LogPath     string    `toml:"log_path"`
	SubmittedAt time.Time `toml:"submitted_at"`
}

// filePath returns the resume file location for a directory.
func filePath(dir string) string {
	return filepath.Join(dir, config.ResumeFileName)
}

// Save writes the handle to dir, replacing any previous one.
func Save(dir string, h *Handle) error {
	f, err := os.OpenFile(filePath(dir), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, utils.PermFile)
	if err != nil {
		return fmt.Errorf("failed to create resume file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(h); err != nil {
		return fmt.Errorf("failed to write resume file: %w", err)
	}
	return nil
}

// Load reads the handle recorded in dir.
// Returns ErrNoResumeFile if none exists, ErrMalformedResumeFile if it
// exists but cannot be decoded or names no log path.
func Load(dir string) (*Handle, error) {
	path := filePath(dir)

	var h Handle
	if _, err := toml.DecodeFile(path, &h); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNoResumeFile, dir)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedResumeFile, err)
	}

	if h.LogPath == "" {
		return nil, fmt.Errorf("%w: missing log path", ErrMalformedResumeFile)
	}
	return &h, nil
}

// Clean removes the resume file from dir. The bool reports whether a
// file was actually there to remove.
func Clean(dir string) (bool, error) {
	err := os.Remove(filePath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to remove resume file: %w", err)
	}
	return true, nil
}
