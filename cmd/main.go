// unread polls a mail service for unread messages and shows them as a table.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jwafle/unread/internal/app"
	"github.com/jwafle/unread/internal/config"
	"github.com/jwafle/unread/internal/format"
	"github.com/jwafle/unread/internal/logging"
	"github.com/jwafle/unread/internal/transport"
	"github.com/jwafle/unread/internal/ui"
)

// Version is set via ldflags at build time (e.g. -X main.Version=v0.1.0).
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		once       bool
	)

	cmd := &cobra.Command{
		Use:           "unread",
		Short:         "Show unread messages as they arrive",
		Long:          "unread polls <server>/messages/unread and adds every message it has not shown yet to the top of a table.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader := config.NewLoader()
			if configFile != "" {
				loader.SetConfigFile(configFile)
			}
			if err := loader.BindFlags(cmd.Flags()); err != nil {
				return err
			}
			cfg, err := loader.Load()
			if err != nil {
				return err
			}

			plain := cfg.Plain || once || !term.IsTerminal(int(os.Stdout.Fd()))
			return run(cmd.Context(), cfg, plain, once, cmd.OutOrStdout())
		},
	}

	defaults := config.DefaultConfig()
	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file (default: unread.yaml in $XDG_CONFIG_HOME/unread, ~/.config/unread or .)")
	flags.String("server", defaults.Server, "mail service base URL")
	flags.Duration("interval", transport.DefaultInterval, "time between polls")
	flags.Int("subject-limit", format.DefaultLimit, "subject characters shown before truncation")
	flags.Bool("utc", false, "show timestamps in UTC instead of local time")
	flags.Bool("plain", false, "print tables to stdout instead of the interactive view")
	flags.BoolVar(&once, "once", false, "poll once, print the table and exit (implies --plain)")
	flags.String("log-level", defaults.Logging.Level, "log level (trace, debug, info, warn, error)")
	flags.String("log-format", defaults.Logging.Format, "log format (console, json)")
	flags.String("log-file", "", "write logs to this file")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

func run(ctx context.Context, cfg *config.Config, plain, once bool, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logOut, closeLog, err := logOutput(cfg.Logging.File, plain)
	if err != nil {
		return err
	}
	defer closeLog()

	var hook *ui.StatusHook
	logCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: logOut,
	}
	if !plain {
		hook = &ui.StatusHook{}
		logCfg.Hooks = []zerolog.Hook{hook}
	}
	logging.Init(logCfg)

	inbox, err := app.NewInbox(app.Options{
		Server:       cfg.Server,
		Interval:     cfg.PollInterval,
		SubjectLimit: cfg.SubjectLimit,
		Location:     cfg.Location(),
		Logger:       &logging.Logger,
	})
	if err != nil {
		return err
	}

	if plain {
		return app.RunPlain(ctx, inbox, out, app.PlainOptions{
			Once:  once,
			Color: isTerminal(out),
		})
	}
	return ui.Run(ctx, inbox, hook)
}

// logOutput picks the log destination. Without a file, logs go to stderr in
// plain mode and are dropped behind the full-screen view.
func logOutput(path string, plain bool) (io.Writer, func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}
	if plain {
		return os.Stderr, func() {}, nil
	}
	return io.Discard, func() {}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
