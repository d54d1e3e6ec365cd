package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adamweingram/slurmtail/internal/scheduler"
	"github.com/adamweingram/slurmtail/internal/utils"
)

var schedulerCmd = &cobra.Command{
	Use:     "scheduler [script]",
	Aliases: []string{"sched"},
	Short:   "Show the detected batch scheduler",
	Long: `Show which batch scheduler is available on this system.

With a script argument, inspect the script's directive comments instead
and report which scheduler they belong to and where the job will write
its log. This works without any scheduler installed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return inspectScript(args[0])
		}

		sched, err := scheduler.Active()
		if err != nil {
			return err
		}

		info, err := sched.GetInfo()
		if err != nil {
			return err
		}

		utils.PrintMessage("%s", utils.StyleTitle("Scheduler"))
		utils.PrintMessage("  Type:    %s", utils.StyleInfo(string(info.Type)))
		utils.PrintMessage("  Binary:  %s", utils.StylePath(info.SubmitBin))
		if info.Version != "" {
			utils.PrintMessage("  Version: %s", info.Version)
		}
		if info.InsideJob {
			utils.PrintMessage("  Running inside job %s", utils.StyleNumber(info.CurrentJob))
		}
		return nil
	},
}

// inspectScript classifies a batch script by its directive comments and
// reports the output path the job would use.
func inspectScript(path string) error {
	sched, js, err := scheduler.ParseAnyScript(path)
	if err != nil {
		return err
	}

	utils.PrintMessage("%s", utils.StyleTitle("Script"))
	utils.PrintMessage("  Scheduler: %s", utils.StyleInfo(string(sched.Type())))
	if js.JobName != "" {
		utils.PrintMessage("  Job name:  %s", utils.StyleName(js.JobName))
	}
	utils.PrintMessage("  Output:    %s", utils.StylePath(js.OutputPattern))
	for _, d := range js.RawDirectives {
		utils.PrintDebug("Directive: %s", d)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}
