package main

import (
	"os"

	"github.com/spf13/cobra"

	"taskboard/internal/board"
	"taskboard/internal/output"
)

var moveCmd = &cobra.Command{
	Use:   "move ID STATUS",
	Short: "Move a task to a different status",
	Long: `Changes the status of a task. STATUS is a status name or one of the
slugs yeni, devam, beklemede, test, tamamlandi. The rest of the task is
sent unchanged.`,
	Args: cobra.ExactArgs(2), //nolint:mnd // id and status
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	status, err := parseStatusArg(args[1])
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	t, err := resolveTask(ctx, args[0])
	if err != nil {
		return err
	}

	// Idempotent: already there.
	if t.Status == status {
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, t)
		}
		output.Messagef(os.Stdout, "Task %s is already %s", output.ShortID(t.ID), status)
		return nil
	}

	old := t.Status
	updated, err := api.UpdateTask(ctx, t.ID, board.Move(*t, status))
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, updated)
	}
	output.Messagef(os.Stdout, "Moved task %s: %s -> %s", output.ShortID(t.ID), old, updated.Status)
	return nil
}
