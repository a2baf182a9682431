package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"taskboard/internal/output"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a task and its feedback",
	Long: `Deletes a task. Its assignments and feedback are removed with it.
Asks for confirmation on a terminal unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	t, err := resolveTask(ctx, args[0])
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("refusing to delete without --yes in non-interactive mode")
		}
		fmt.Fprintf(os.Stderr, "Delete task %s %q? [y/N] ", output.ShortID(t.ID), t.Title)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			output.Messagef(os.Stderr, "Aborted")
			return nil
		}
	}

	if err := api.DeleteTask(ctx, t.ID); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{"id": t.ID})
	}
	output.Messagef(os.Stdout, "Deleted task %s", output.ShortID(t.ID))
	return nil
}
