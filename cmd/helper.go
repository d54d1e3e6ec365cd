package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/adamweingram/slurmtail/internal/config"
	"github.com/adamweingram/slurmtail/internal/follow"
	"github.com/adamweingram/slurmtail/internal/utils"
)

// followFlags holds the flags shared by run and resume.
type followFlags struct {
	timeout       string
	fileTimeout   string
	noTimeout     bool
	noFileTimeout bool
	lines         int
	noFollow      bool
	poll          bool
}

func addFollowFlags(cmd *cobra.Command, f *followFlags) {
	cmd.Flags().StringVarP(&f.timeout, "timeout", "t", "", "abort when no new output arrives for this long (e.g. 120, 2m, 0:02:00)")
	cmd.Flags().StringVar(&f.fileTimeout, "file-timeout", "", "abort when the log file does not appear within this long")
	cmd.Flags().BoolVar(&f.noTimeout, "no-timeout", false, "never abort on missing output")
	cmd.Flags().BoolVar(&f.noFileTimeout, "no-file-timeout", false, "never abort waiting for the log file to appear")
	cmd.Flags().IntVarP(&f.lines, "lines", "n", 0, "trailing lines to print when the log already has content")
	cmd.Flags().BoolVar(&f.noFollow, "no-follow", false, "print the trailing lines and exit instead of streaming")
	cmd.Flags().BoolVar(&f.poll, "poll", false, "poll the filesystem instead of using inotify (for NFS/Lustre)")
}

// resolve merges flag values over the configured defaults. linesSet
// reports whether --lines was given at all, so an explicit -n 0 (start
// at the end of the file) is distinguishable from the flag's default.
// Returns (fileTimeout, followOptions). A zero duration means unbounded.
func (f *followFlags) resolve(linesSet bool) (time.Duration, follow.Options, error) {
	fileTimeout := config.Global.FileTimeout
	idleTimeout := config.Global.IdleTimeout
	lines := config.Global.TailLines

	if f.timeout != "" {
		d, err := utils.ParseDuration(f.timeout)
		if err != nil {
			return 0, follow.Options{}, err
		}
		idleTimeout = d
	}
	if f.fileTimeout != "" {
		d, err := utils.ParseDuration(f.fileTimeout)
		if err != nil {
			return 0, follow.Options{}, err
		}
		fileTimeout = d
	}
	if f.noTimeout {
		idleTimeout = 0
	}
	if f.noFileTimeout {
		fileTimeout = 0
	}
	if linesSet {
		lines = f.lines
	}

	return fileTimeout, follow.Options{
		TailLines:   lines,
		IdleTimeout: idleTimeout,
		Poll:        f.poll,
		NoFollow:    f.noFollow,
	}, nil
}

// resolveLogPath turns an expanded output pattern into an absolute path.
// Relative patterns resolve against the working directory, or against
// the script's directory when useScriptDir is set. Absolute patterns are
// always used as-is; the warning fires only when that overrides an
// explicitly requested base directory.
func resolveLogPath(pattern, scriptPath string, useScriptDir bool) (string, error) {
	if filepath.IsAbs(pattern) {
		if useScriptDir {
			utils.PrintWarning("Log path %s is absolute; ignoring --script-dir", utils.StylePath(pattern))
		}
		return filepath.Clean(pattern), nil
	}

	base := ""
	if useScriptDir {
		abs, err := filepath.Abs(scriptPath)
		if err != nil {
			return "", err
		}
		base = filepath.Dir(abs)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		base = cwd
	}

	return filepath.Join(base, pattern), nil
}

// waitAndFollow waits for the log file to appear and streams it to
// stdout according to the command's flags.
func waitAndFollow(cmd *cobra.Command, logPath string, ff *followFlags) error {
	ctx := cmd.Context()
	fileTimeout, opts, err := ff.resolve(cmd.Flags().Changed("lines"))
	if err != nil {
		return err
	}

	if !utils.FileExists(logPath) {
		utils.PrintMessage("Waiting for log file %s ...", utils.StylePath(logPath))
		if err := follow.WaitFor(ctx, logPath, fileTimeout, config.Global.PollInterval); err != nil {
			if errors.Is(err, follow.ErrWaitTimeout) {
				utils.PrintHint("The job may still be queued. Try %s later, or pass %s to keep waiting.",
					utils.StyleAction("slurmtail resume"), utils.StyleAction("--no-file-timeout"))
			}
			return err
		}
	}

	if !opts.NoFollow {
		if utils.IsInteractiveShell() {
			utils.PrintMessage("Following %s (Ctrl-C to stop)", utils.StylePath(logPath))
		} else {
			utils.PrintMessage("Following %s", utils.StylePath(logPath))
		}
	}

	err = follow.Follow(ctx, logPath, os.Stdout, opts)
	if errors.Is(err, follow.ErrIdleTimeout) {
		utils.PrintHint("The job may have finished. Pass %s to keep following anyway.",
			utils.StyleAction("--no-timeout"))
	}
	return err
}
