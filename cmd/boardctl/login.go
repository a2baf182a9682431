package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"taskboard/internal/output"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the token in the config file",
	Long: `Exchanges email and password for a bearer token and saves it, together
with the person id, to the config file. The password is read from the
terminal when --password is not given.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg.ClearSession()
		if err := cfg.Save(); err != nil {
			return err
		}
		output.Messagef(os.Stdout, "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the person behind the current token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		p, err := api.Me(ctx)
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, p)
		}
		output.Messagef(os.Stdout, "%s <%s> (%s)", p.Name, p.Email, p.ID)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		p, err := readPassword()
		if err != nil {
			return err
		}
		password = p
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	res, err := api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	cfg.Token = res.Token
	cfg.PersonID = res.Person.ID
	if flagServer != "" {
		cfg.Server = flagServer
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, res.Person)
	}
	output.Messagef(os.Stdout, "Logged in as %s (token saved to %s)", res.Person.Name, cfg.Path())
	return nil
}

func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
