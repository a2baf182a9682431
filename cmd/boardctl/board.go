package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"taskboard/internal/board"
	"taskboard/internal/domain"
	"taskboard/internal/output"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the task board",
	Long: `Shows one column per status. --assignee narrows the board to tasks
assigned to any of the given people; --mine uses the logged-in person.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().StringSlice("assignee", nil, "person ids to show (comma-separated)")
	boardCmd.Flags().Bool("mine", false, "only tasks assigned to me")
	boardCmd.Flags().String("sort", "", "order within columns: due or title")
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}
	sort, _ := cmd.Flags().GetString("sort")

	tasks, err := api.ListTasks(ctx, nil, sort)
	if err != nil {
		return err
	}
	b := board.Build(tasks, filter)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, b)
	}
	output.BoardView(os.Stdout, b, domain.Today(), terminalWidth())
	return nil
}

func filterFromFlags(cmd *cobra.Command) (board.Filter, error) {
	ids, _ := cmd.Flags().GetStringSlice("assignee")
	f := board.NewFilter(ids...)
	if mine, _ := cmd.Flags().GetBool("mine"); mine {
		if cfg.PersonID == "" {
			return nil, errNotLoggedIn
		}
		f[cfg.PersonID] = struct{}{}
	}
	return f, nil
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}
