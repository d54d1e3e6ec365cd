// Package scheduler abstracts HPC batch schedulers (SLURM, PBS, LSF):
// reading output directives from job scripts, submitting them, and
// expanding scheduler-specific placeholders in output paths.
package scheduler

import (
	"context"
	"os"
	"path/filepath"
)

// SchedulerType identifies a batch scheduler implementation.
type SchedulerType string

const (
	TypeSlurm SchedulerType = "SLURM"
	TypePBS   SchedulerType = "PBS"
	TypeLSF   SchedulerType = "LSF"
)

// SchedulerInfo describes a detected scheduler.
type SchedulerInfo struct {
	Type       SchedulerType
	SubmitBin  string // resolved path of the submit binary
	Version    string // version string if the scheduler reports one
	InsideJob  bool   // true when running inside one of this scheduler's jobs
	CurrentJob string // job ID of the surrounding job, if any
}

// JobScript is the result of parsing a batch script's directive comments.
type JobScript struct {
	Path          string
	JobName       string   // from the name directive, empty if absent
	OutputPattern string   // raw output directive value, may contain placeholders
	RawDirectives []string // every directive line found, for debug output
}

// Job identifies a submitted job.
type Job struct {
	ID   string
	Name string
}

// Scheduler is the interface all batch scheduler backends implement.
type Scheduler interface {
	// Type returns the scheduler type identifier.
	Type() SchedulerType

	// IsAvailable reports whether this scheduler's submit binary is usable.
	IsAvailable() bool

	// GetInfo returns details about the detected scheduler installation.
	GetInfo() (*SchedulerInfo, error)

	// ReadJobScript parses directive comments out of a batch script.
	// Returns ErrScriptNotFound or ErrNoOutputDirective as appropriate.
	ReadJobScript(path string) (*JobScript, error)

	// Submit hands the script to the scheduler and returns the new job.
	// extraArgs are passed through to the submit binary verbatim.
	Submit(ctx context.Context, script *JobScript, extraArgs []string) (*Job, error)

	// ExpandOutputPattern substitutes scheduler placeholders (such as job
	// ID and job name tokens) into an output pattern.
	ExpandOutputPattern(pattern string, job *Job) string
}

// all lists every supported backend in detection priority order.
func all() []Scheduler {
	return []Scheduler{
		NewSlurm(),
		NewPBS(),
		NewLSF(),
	}
}

// DetectScheduler finds the first available scheduler on this system.
func DetectScheduler() (Scheduler, error) {
	for _, s := range all() {
		if s.IsAvailable() {
			return s, nil
		}
	}
	return nil, ErrSchedulerNotFound
}

// DetectSchedulerWithBinary picks the backend matching an explicitly
// configured submit binary, going by the binary's basename.
func DetectSchedulerWithBinary(binPath string) (Scheduler, error) {
	switch filepath.Base(binPath) {
	case "sbatch":
		return NewSlurmWithBinary(binPath), nil
	case "qsub":
		return NewPBSWithBinary(binPath), nil
	case "bsub":
		return NewLSFWithBinary(binPath), nil
	}
	// Unknown basename: assume a wrapped sbatch, the common site setup
	return NewSlurmWithBinary(binPath), nil
}

// DetectType returns the backend for an explicit scheduler type name.
func DetectType(name string) (Scheduler, error) {
	var s Scheduler
	switch SchedulerType(name) {
	case TypeSlurm:
		s = NewSlurm()
	case TypePBS:
		s = NewPBS()
	case TypeLSF:
		s = NewLSF()
	default:
		return nil, ErrSchedulerNotFound
	}
	if !s.IsAvailable() {
		return nil, ErrSchedulerNotAvailable
	}
	return s, nil
}

// IsInsideJob reports whether the current process runs inside a batch job,
// and which scheduler owns it.
func IsInsideJob() (SchedulerType, string, bool) {
	if id := os.Getenv("SLURM_JOB_ID"); id != "" {
		return TypeSlurm, id, true
	}
	if id := os.Getenv("PBS_JOBID"); id != "" {
		return TypePBS, id, true
	}
	if id := os.Getenv("LSB_JOBID"); id != "" {
		return TypeLSF, id, true
	}
	return "", "", false
}

// ParseAnyScript tries every backend's directive syntax against a script
// and returns the first backend that recognizes an output directive.
// Classification by content only; no scheduler needs to be installed.
func ParseAnyScript(path string) (Scheduler, *JobScript, error) {
	var firstErr error
	for _, s := range all() {
		js, err := s.ReadJobScript(path)
		if err == nil {
			return s, js, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, nil, firstErr
}
