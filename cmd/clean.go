package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/adamweingram/slurmtail/internal/state"
	"github.com/adamweingram/slurmtail/internal/utils"
)

var cleanCmd = &cobra.Command{
	Use:     "clean",
	Aliases: []string{"c"},
	Short:   "Remove the resume record from this directory",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}

		removed, err := state.Clean(cwd)
		if err != nil {
			return err
		}
		if removed {
			utils.PrintSuccess("Removed resume record.")
		} else {
			utils.PrintMessage("Nothing to clean.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
