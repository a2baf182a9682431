package main

import (
	"os"

	"github.com/spf13/cobra"

	"taskboard/internal/domain"
	"taskboard/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a task with its feedback history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		t, err := resolveTask(ctx, args[0])
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, t)
		}
		output.TaskDetail(os.Stdout, t, domain.Today())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
