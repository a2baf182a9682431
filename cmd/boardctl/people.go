package main

import (
	"os"

	"github.com/spf13/cobra"

	"taskboard/internal/client"
	"taskboard/internal/output"
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "List or add people",
	Args:  cobra.NoArgs,
	RunE:  runPeopleList,
}

var peopleListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List people",
	Args:    cobra.NoArgs,
	RunE:    runPeopleList,
}

var peopleAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a person",
	Long: `Adds a person who can be assigned to tasks. With --email and
--password the person can also log in.`,
	Args: cobra.ExactArgs(1),
	RunE: runPeopleAdd,
}

func init() {
	peopleAddCmd.Flags().String("email", "", "email address")
	peopleAddCmd.Flags().String("avatar", "", "avatar URL")
	peopleAddCmd.Flags().String("password", "", "login password (requires --email)")
	peopleCmd.AddCommand(peopleListCmd, peopleAddCmd)
	rootCmd.AddCommand(peopleCmd)
}

func runPeopleList(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	people, err := api.ListPeople(ctx)
	if err != nil {
		return err
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, people)
	}
	output.PeopleTable(os.Stdout, people)
	return nil
}

func runPeopleAdd(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	avatar, _ := cmd.Flags().GetString("avatar")
	password, _ := cmd.Flags().GetString("password")

	ctx, cancel := commandContext(cmd)
	defer cancel()

	p, err := api.CreatePerson(ctx, client.PersonInput{
		Name:      args[0],
		Email:     email,
		AvatarURL: avatar,
		Password:  password,
	})
	if err != nil {
		return err
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, p)
	}
	output.Messagef(os.Stdout, "Added %s (%s)", p.Name, p.ID)
	return nil
}
