package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"taskboard/internal/board"
	"taskboard/internal/domain"
	"taskboard/internal/output"
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit task fields",
	Long: `Changes the given fields and sends the full task back. Fields without
a flag keep their current value. --assignee replaces the assignee set.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("description", "", "new description")
	editCmd.Flags().String("status", "", "new status name or slug")
	editCmd.Flags().String("due", "", "new due date (YYYY-MM-DD)")
	editCmd.Flags().Bool("clear-due", false, "remove the due date")
	editCmd.Flags().StringSlice("assignee", nil, "replace assignees (comma-separated person ids)")
	editCmd.Flags().Bool("clear-assignees", false, "remove all assignees")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	t, err := resolveTask(ctx, args[0])
	if err != nil {
		return err
	}

	in := board.Move(*t, t.Status)
	changed := false
	flags := cmd.Flags()

	if flags.Changed("title") {
		in.Title, _ = flags.GetString("title")
		changed = true
	}
	if flags.Changed("description") {
		in.Description, _ = flags.GetString("description")
		changed = true
	}
	if flags.Changed("status") {
		s, _ := flags.GetString("status")
		status, err := parseStatusArg(s)
		if err != nil {
			return err
		}
		in.Status = string(status)
		changed = true
	}
	if flags.Changed("due") {
		due, _ := flags.GetString("due")
		if _, err := domain.ParseOptionalDate(due); err != nil {
			return err
		}
		in.DueDate = due
		changed = true
	}
	if c, _ := flags.GetBool("clear-due"); c {
		in.DueDate = ""
		changed = true
	}
	if flags.Changed("assignee") {
		in.AssigneeIDs, _ = flags.GetStringSlice("assignee")
		changed = true
	}
	if c, _ := flags.GetBool("clear-assignees"); c {
		in.AssigneeIDs = []string{}
		changed = true
	}
	if !changed {
		return errors.New("no changes specified")
	}

	updated, err := api.UpdateTask(ctx, t.ID, in)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, updated)
	}
	output.Messagef(os.Stdout, "Updated task %s", output.ShortID(updated.ID))
	return nil
}
