package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/board"
	"taskboard/internal/client"
	"taskboard/internal/clientconfig"
	"taskboard/internal/domain"
	"taskboard/internal/output"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON       bool
	flagNoColor    bool
	flagServer     string
	flagToken      string
	flagConfigPath string
)

// Loaded in PersistentPreRunE.
var (
	cfg *clientconfig.Config
	api *client.Client
)

const requestTimeout = 20 * time.Second

var rootCmd = &cobra.Command{
	Use:   "boardctl",
	Short: "Terminal client for the task board",
	Long: `boardctl shows the task board in the terminal and edits tasks,
people and feedback through the board's HTTP API.

Settings live in ~/.config/taskboard/config.yaml; --server and --token
override them for a single run.`,
	Version:           version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "server base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "bearer token (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to config file")
}

func setup(_ *cobra.Command, _ []string) error {
	if flagNoColor || os.Getenv("NO_COLOR") != "" {
		output.DisableColor()
	}

	path := flagConfigPath
	if path == "" {
		p, err := clientconfig.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	c, err := clientconfig.Load(path)
	if err != nil {
		return err
	}
	cfg = c

	server, token := cfg.Server, cfg.Token
	if flagServer != "" {
		server = flagServer
	}
	if flagToken != "" {
		token = flagToken
	}
	api = client.New(server, token)
	return nil
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	status := 0
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
	}

	if outputFormat() == output.FormatJSON {
		output.JSONError(os.Stdout, err.Error(), status)
	} else {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(1)
}

func outputFormat() output.Format {
	return output.Detect(flagJSON)
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, requestTimeout)
}

// resolveTask fetches the full task named by a full id or unique id prefix.
func resolveTask(ctx context.Context, idOrPrefix string) (*domain.Task, error) {
	t, err := api.GetTask(ctx, idOrPrefix)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, client.ErrNotFound) {
		return nil, err
	}

	tasks, err := api.ListTasks(ctx, nil, "")
	if err != nil {
		return nil, err
	}
	match, err := board.FindByPrefix(tasks, idOrPrefix)
	if err != nil {
		return nil, err
	}
	return api.GetTask(ctx, match.ID)
}

// parseStatusArg accepts a status name or its short slug.
func parseStatusArg(s string) (domain.Status, error) {
	st, err := domain.ParseStatus(s)
	if err != nil {
		slugs := make([]string, 0, len(domain.Statuses()))
		for _, v := range domain.Statuses() {
			slugs = append(slugs, v.Slug())
		}
		return "", fmt.Errorf("%w: %q (use one of %v)", err, s, slugs)
	}
	return st, nil
}
