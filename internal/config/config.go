package config

import "time"

const VERSION = "0.3.0"

// ResumeFileName is the hidden per-directory state file linking a prior
// submission to its log path. It lives in the directory slurmtail was run from.
const ResumeFileName = "._slurmtail"

// Config holds global application settings
type Config struct {
	Debug   bool
	Quiet   bool
	Version string

	SchedulerBin  string // Explicit scheduler submit binary (empty = auto-detect)
	SchedulerType string // Detected scheduler type (informational)

	TailLines    int           // Trailing lines to print when the follow starts
	PollInterval time.Duration // Poll interval for file appearance and tailing
	FileTimeout  time.Duration // Max wait for the log file to appear (<=0 = unbounded)
	IdleTimeout  time.Duration // Max wait with no new output (<=0 = unbounded)
}

// Global holds the singleton configuration instance
var Global Config

// LoadDefaults resets Global to built-in defaults. Viper values and
// command-line flags are layered on top afterwards.
func LoadDefaults() {
	Global = Config{
		Debug:   false,
		Quiet:   false,
		Version: VERSION,

		TailLines:    150,
		PollInterval: time.Second,
		FileTimeout:  2 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}
}
