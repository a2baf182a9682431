package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taskboard/internal/output"
)

var feedbackCmd = &cobra.Command{
	Use:     "feedback ID TEXT",
	Aliases: []string{"note"},
	Short:   "Add a feedback note to a task",
	Long: `Appends a note to the task's feedback history. The note is signed with
the logged-in person unless --anonymous is set.`,
	Args: cobra.ExactArgs(2), //nolint:mnd // id and text
	RunE: runFeedback,
}

func init() {
	feedbackCmd.Flags().Bool("anonymous", false, "do not attach the logged-in person")
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(args[1])
	if text == "" {
		return errors.New("feedback text is required")
	}

	userID := cfg.PersonID
	if anon, _ := cmd.Flags().GetBool("anonymous"); anon {
		userID = ""
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	t, err := resolveTask(ctx, args[0])
	if err != nil {
		return err
	}
	fb, err := api.AddFeedback(ctx, t.ID, text, userID)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, fb)
	}
	output.Messagef(os.Stdout, "Added feedback to task %s", output.ShortID(t.ID))
	return nil
}
