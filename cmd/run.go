package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/adamweingram/slurmtail/internal/scheduler"
	"github.com/adamweingram/slurmtail/internal/state"
	"github.com/adamweingram/slurmtail/internal/utils"
)

var (
	runFlags     followFlags
	runScriptDir bool
)

var runCmd = &cobra.Command{
	Use:     "run <script> [-- submit args...]",
	Aliases: []string{"submit"},
	Short:   "Submit a batch script and follow its log output",
	Long: `Submit a batch script to the scheduler, work out where the job will
write its log from the script's output directive, and follow that file.

Arguments after -- are passed to the submit command unchanged:

  slurmtail run train.sh -- --partition=gpu`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		scriptPath := args[0]
		extraArgs := args[1:]

		sched, err := scheduler.Active()
		if err != nil {
			if errors.Is(err, scheduler.ErrSchedulerNotFound) {
				utils.PrintHint("Point %s at your submit binary, or set %s in the config.",
					utils.StyleAction("--scheduler"), utils.StyleName("scheduler_bin"))
			}
			return err
		}

		js, err := sched.ReadJobScript(scriptPath)
		if err != nil {
			return err
		}
		for _, d := range js.RawDirectives {
			utils.PrintDebug("Directive: %s", d)
		}

		utils.PrintMessage("Submitting %s via %s ...",
			utils.StylePath(scriptPath), utils.StyleInfo(string(sched.Type())))

		job, err := sched.Submit(ctx, js, extraArgs)
		if err != nil {
			return err
		}
		utils.PrintSuccess("Submitted job %s", utils.StyleNumber(job.ID))

		expanded := sched.ExpandOutputPattern(js.OutputPattern, job)
		logPath, err := resolveLogPath(expanded, scriptPath, runScriptDir)
		if err != nil {
			return err
		}

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		handle := &state.Handle{
			JobID:       job.ID,
			JobName:     job.Name,
			Scheduler:   string(sched.Type()),
			Script:      scriptPath,
			LogPath:     logPath,
			SubmittedAt: time.Now().UTC(),
		}
		if err := state.Save(cwd, handle); err != nil {
			// The job is already in; a broken resume file should not kill the run
			utils.PrintWarning("Could not record submission for resume: %v", err)
		}

		if runFlags.noFollow {
			utils.PrintHint("Run %s in this directory to follow the log later.",
				utils.StyleAction("slurmtail resume"))
			return nil
		}

		return waitAndFollow(cmd, logPath, &runFlags)
	},
}

func init() {
	addFollowFlags(runCmd, &runFlags)
	runCmd.Flags().BoolVar(&runScriptDir, "script-dir", false, "resolve a relative log path against the script's directory instead of the working directory")
	rootCmd.AddCommand(runCmd)
}
