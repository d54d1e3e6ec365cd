// Package cmd implements the slurmtail command-line interface.
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adamweingram/slurmtail/internal/config"
	"github.com/adamweingram/slurmtail/internal/scheduler"
	"github.com/adamweingram/slurmtail/internal/utils"
)

var (
	flagDebug     bool
	flagQuiet     bool
	flagScheduler string
)

var rootCmd = &cobra.Command{
	Use:   "slurmtail",
	Short: "Submit batch jobs and follow their log output",
	Long: `slurmtail submits a batch script to the cluster scheduler, finds the
log file named by the script's output directive, and follows it like
tail -f. The submission is recorded in the working directory so the
follow can be picked up again later with 'slurmtail resume'.

Supports SLURM (sbatch), PBS (qsub) and LSF (bsub).`,
	Version:       config.VERSION,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDefaults()

		if err := config.InitViper(); err != nil {
			utils.PrintWarning("Config error: %v", err)
		}
		if updated, err := config.AutoDetectAndSave(); err != nil {
			utils.PrintDebug("Could not save detected scheduler: %v", err)
		} else if updated {
			utils.PrintDebug("Detected scheduler saved to config")
		}
		config.LoadFromViper()

		// Flags override everything
		if flagDebug {
			config.Global.Debug = true
		}
		if flagQuiet {
			config.Global.Quiet = true
		}
		utils.DebugMode = config.Global.Debug
		utils.QuietMode = config.Global.Quiet

		if flagScheduler != "" {
			s, err := resolveSchedulerFlag(flagScheduler)
			if err != nil {
				return err
			}
			scheduler.SetActive(s)
		}

		if typ, id, inside := scheduler.IsInsideJob(); inside {
			utils.PrintDebug("Running inside %s job %s", typ, id)
		}

		return nil
	},
}

// resolveSchedulerFlag accepts either a scheduler type name (SLURM, PBS,
// LSF) or a path to a submit binary.
func resolveSchedulerFlag(value string) (scheduler.Scheduler, error) {
	switch scheduler.SchedulerType(strings.ToUpper(value)) {
	case scheduler.TypeSlurm, scheduler.TypePBS, scheduler.TypeLSF:
		return scheduler.DetectType(strings.ToUpper(value))
	}
	return scheduler.DetectSchedulerWithBinary(value)
}

// Execute runs the root command with signal-aware context.
// Ctrl-C stops a follow cleanly instead of killing the process mid-line.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			utils.PrintMessage("Interrupted.")
			return
		}
		utils.PrintError("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress status messages (log output still shown)")
	rootCmd.PersistentFlags().StringVar(&flagScheduler, "scheduler", "", "scheduler type (SLURM, PBS, LSF) or submit binary path")
}
