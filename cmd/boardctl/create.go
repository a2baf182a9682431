package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taskboard/internal/client"
	"taskboard/internal/domain"
	"taskboard/internal/output"
)

var createCmd = &cobra.Command{
	Use:     "create [TITLE]",
	Aliases: []string{"add"},
	Short:   "Create a new task",
	Long: `Creates a task. Title can be given as an argument or with --title.
Status defaults to "Yeni Talep". --feedback attaches a first note.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().String("title", "", "task title (alternative to positional argument)")
	createCmd.Flags().String("description", "", "task description")
	createCmd.Flags().String("status", string(domain.StatusNew), "status name or slug")
	createCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	createCmd.Flags().StringSlice("assignee", nil, "assignee person ids (comma-separated)")
	createCmd.Flags().String("feedback", "", "initial feedback note")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	if len(args) > 0 {
		title = args[0]
	}
	if strings.TrimSpace(title) == "" {
		return errors.New("title is required")
	}

	statusArg, _ := cmd.Flags().GetString("status")
	status, err := parseStatusArg(statusArg)
	if err != nil {
		return err
	}
	due, _ := cmd.Flags().GetString("due")
	if _, err := domain.ParseOptionalDate(due); err != nil {
		return err
	}
	desc, _ := cmd.Flags().GetString("description")
	assignees, _ := cmd.Flags().GetStringSlice("assignee")
	feedback, _ := cmd.Flags().GetString("feedback")

	ctx, cancel := commandContext(cmd)
	defer cancel()

	t, err := api.CreateTask(ctx, client.TaskInput{
		Title:       title,
		Description: desc,
		Status:      string(status),
		DueDate:     due,
		AssigneeIDs: assignees,
		Feedback:    feedback,
	})
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	output.Messagef(os.Stdout, "Created task %s: %s", output.ShortID(t.ID), t.Title)
	return nil
}
