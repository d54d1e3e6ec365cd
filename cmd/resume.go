package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/adamweingram/slurmtail/internal/state"
	"github.com/adamweingram/slurmtail/internal/utils"
)

var resumeFlags followFlags

var resumeCmd = &cobra.Command{
	Use:     "resume",
	Aliases: []string{"r"},
	Short:   "Pick the log follow back up for the last submitted job",
	Long: `Resume following the log of the job last submitted from this
directory. If the log file has not appeared yet (the job is still
queued), resume waits for it the same way run does.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}

		handle, err := state.Load(cwd)
		if err != nil {
			return err
		}

		if handle.JobName != "" {
			utils.PrintMessage("Resuming job %s (%s) on %s",
				utils.StyleNumber(handle.JobID), utils.StyleName(handle.JobName),
				utils.StyleInfo(handle.Scheduler))
		} else {
			utils.PrintMessage("Resuming job %s on %s",
				utils.StyleNumber(handle.JobID), utils.StyleInfo(handle.Scheduler))
		}

		return waitAndFollow(cmd, handle.LogPath, &resumeFlags)
	},
}

func init() {
	addFollowFlags(resumeCmd, &resumeFlags)
	rootCmd.AddCommand(resumeCmd)
}
