package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"taskboard/internal/domain"
	"taskboard/internal/output"
)

var errNotLoggedIn = errors.New("not logged in: run boardctl login first")

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks as a table",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringSlice("assignee", nil, "person ids to show (comma-separated)")
	listCmd.Flags().Bool("mine", false, "only tasks assigned to me")
	listCmd.Flags().String("sort", "", "sort order: due (default) or title")
	rootCmd.AddCommand(listCmd)
}

// runList sends the assignee filter to the server. board filters the full
// list locally instead.
func runList(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}
	sort, _ := cmd.Flags().GetString("sort")

	tasks, err := api.ListTasks(ctx, filter.IDs(), sort)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, tasks)
	}
	output.TaskTable(os.Stdout, tasks, domain.Today())
	return nil
}
