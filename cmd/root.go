package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"busbilet-cli/config"
	"busbilet-cli/logging"
	"busbilet-cli/service"
	"busbilet-cli/store"
	"busbilet-cli/tui"
)

const appName = "busbilet-cli"

// Set at build time with -ldflags "-X busbilet-cli/cmd.Version=...".
var (
	Version = "dev"
	Commit  = "none"
)

const (
	loadFailedText      = "could not load data"
	operationFailedText = "an error occurred during the operation"
)

// app holds what subcommands share once the persistent flags are parsed.
type app struct {
	flags  config.Flags
	cfg    *config.Config
	logger *slog.Logger
	client *service.Client
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "busbilet",
		Short: "Bus tickets from the terminal",
		Long: `Search journeys between stations, pick seats on the coach layout and buy
tickets from the terminal. Run without a subcommand for the interactive UI.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
	a.flags.Bind(root.PersistentFlags())

	root.AddCommand(
		newTUICmd(a),
		newStationsCmd(a),
		newJourneysCmd(a),
		newSeatsCmd(a),
		newBuyCmd(a),
		newTicketCmd(a),
		newVersionCmd(),
	)
	return root
}

func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, ErrPurchaseRefused) {
			root.PrintErrln("Error:", err)
		}
		os.Exit(1)
	}
}

func (a *app) setup() error {
	cfg, err := a.flags.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.NewCommandLogger(cfg.Log.Level)
	a.client = a.newClient(a.logger)
	a.logger.Debug("config loaded", "api", a.client.BaseURL(), "timeout", cfg.API.Timeout.String(), "cache", cfg.Cache.Enabled)
	return nil
}

func (a *app) newClient(logger *slog.Logger) *service.Client {
	return service.NewClient(nil, service.Options{
		BaseURL:     a.cfg.API.BaseURL,
		Timeout:     a.cfg.API.Timeout.Std(),
		MaxAttempts: a.cfg.API.MaxAttempts,
		UserAgent:   appName + "/" + Version,
		Logger:      logger,
	})
}

// failure logs a service call failure and returns the error shown to the
// user: the service's own message when it sent one, text otherwise.
func (a *app) failure(op string, err error, text string) error {
	attrs := []any{"op", op, "error", err}
	var apiErr *service.APIError
	if errors.As(err, &apiErr) {
		attrs = append(attrs, "endpoint", apiErr.Endpoint, "status", apiErr.StatusCode, "request_id", apiErr.RequestID)
	}
	a.logger.Error("booking api call failed", attrs...)

	if message := service.ServiceMessage(err); message != "" {
		return errors.New(message)
	}
	return errors.New(text)
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive booking UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
}

// runTUI owns the terminal, so logs go to a file instead of stderr.
func (a *app) runTUI(ctx context.Context) error {
	path := a.cfg.Log.File
	if path == "" {
		dir, err := store.CacheDir()
		if err != nil {
			return fmt.Errorf("resolve log dir: %w", err)
		}
		path = filepath.Join(dir, "busbilet.log")
	}
	logger, closer, err := logging.OpenFile(path, a.cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Info("starting interactive session", "version", Version, "api", a.cfg.API.BaseURL)
	model := tui.New(tui.Options{
		Client:   a.newClient(logger),
		Logger:   logger,
		UseCache: a.cfg.Cache.Enabled,
	})
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		logger.Error("interactive session failed", "error", err)
		return err
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		// Printing the version needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(out io.Writer) {
	fmt.Fprintf(out, "%s %s", appName, Version)
	if Commit != "none" && Commit != "" {
		fmt.Fprintf(out, " (%s)", Commit)
	}
	fmt.Fprintln(out)
}
