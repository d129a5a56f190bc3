package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mgree/smoosh/internal/config"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	format     string
	debug      bool
	noColor    bool
}

// app is what a command runs with once flags and configuration are
// resolved.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	color  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		FormatError(os.Stderr, err, ShouldUseColor(os.Stderr, false))
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:           "shtepper",
		Short:         "Render smoosh execution traces as annotated shell",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "shtepper.yml", "Path to configuration file")
	flags.StringVar(&opts.format, "format", "", "Output format: text, html or ansi (default from config)")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug output")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newRenderCmd(&opts),
		newCheckCmd(&opts),
		newWatchCmd(&opts),
		newRunCmd(&opts),
	)
	return root
}

// setup loads configuration and applies flag overrides. The default config
// path may be missing; an explicit one may not.
func setup(cmd *cobra.Command, opts *options) (*app, error) {
	cfg, err := config.Load(opts.configPath, !cmd.Flags().Changed("config"))
	if err != nil {
		return nil, &CLIError{
			Type:    "config",
			Message: "could not load configuration",
			Details: err.Error(),
			Hint:    "Check the file passed with --config",
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, &CLIError{Type: "config", Message: "invalid environment override", Details: err.Error()}
	}
	if opts.format != "" {
		cfg.Render.Format = opts.format
	}
	if opts.debug {
		cfg.Debug = true
	}
	if opts.noColor {
		cfg.Render.Color = config.ColorNever
	}
	if err := cfg.Validate(); err != nil {
		return nil, &CLIError{Type: "config", Message: "invalid configuration", Details: err.Error()}
	}

	a := &app{
		cfg:    cfg,
		stdin:  cmd.InOrStdin(),
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
	}
	a.logger = newLogger(a.stderr, cfg.Debug)
	a.color = colorEnabled(cfg.Render.Color, a.stdout)
	return a, nil
}

// newLogger writes text records without time or level, the way the
// interactive tools print diagnostics.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func exitCode(err error) int {
	var e *CLIError
	if errors.As(err, &e) && e.Type == "check" {
		return 2
	}
	return 1
}

// openInput returns the named file, or stdin for "-" or no argument.
func openInput(a *app, args []string) (io.Reader, string, func() error, error) {
	if len(args) == 0 || args[0] == "-" {
		return a.stdin, "<stdin>", func() error { return nil }, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", nil, fmt.Errorf("error opening file %s: %w", args[0], err)
	}
	return f, args[0], f.Close, nil
}
