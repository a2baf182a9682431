package main

import (
	"os"

	"github.com/spf13/cobra"

	"taskboard/internal/output"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent changes and logins",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		logs, err := api.Activity(ctx, limit)
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, logs)
		}
		output.ActivityTable(os.Stdout, logs)
		return nil
	},
}

func init() {
	activityCmd.Flags().IntP("limit", "n", 0, "number of entries (server default when 0)")
	rootCmd.AddCommand(activityCmd)
}
