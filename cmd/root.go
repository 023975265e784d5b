// Package cmd provides the root command and CLI setup for xform.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/xform/internal/adapter"
	"github.com/mouse-blink/xform/internal/config"
	"github.com/mouse-blink/xform/internal/controller"
	"github.com/mouse-blink/xform/internal/domain"
	"github.com/mouse-blink/xform/internal/domain/plugins"
)

var fsAdapter adapter.SourceFSAdapter
var tsconfigLoader adapter.TSConfigLoader
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

var logLevel = new(slog.LevelVar)
var logger *slog.Logger

// cfg is loaded before every command runs.
var cfg = &config.Config{Async: true}

func init() {
	logLevel.Set(slog.LevelWarn)
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	tsconfigLoader = adapter.NewTSConfigLoader(fsAdapter)
	reportStore = adapter.NewReportStore(fsAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		tsconfigLoader,
		reportStore,
		ui,
		plugins.DefaultRegistry(),
		logger,
	)
}

var configFlag string
var verboseFlag int

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xform",
		Short: "Build-time source transformer for JavaScript and TypeScript",
		Long: `Xform runs ordered chains of plugins over the JavaScript and TypeScript
files of a project: stripping debug calls, stamping license headers,
upserting runtime variables and filling build-time templates.

Transformers are declared in xform.yaml (or the file given by --config)
and can be overridden with XFORM_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
	}
	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "config file (default is ./xform.yaml)")
	cmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v", "increase log verbosity (-v info, -vv debug)")

	return cmd
}

func setup(cmd *cobra.Command) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	loaded, err := config.Load(configFlag, wd)
	if err != nil {
		return err
	}

	for _, w := range loaded.Validate() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}

	cfg = loaded
	logLevel.Set(verbosity(verboseFlag, cfg.Log.Level))

	return nil
}

// verbosity maps the -v count, falling back to the configured level.
func verbosity(count int, configured string) slog.Level {
	switch {
	case count >= 2:
		return slog.LevelDebug
	case count == 1:
		return slog.LevelInfo
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(configured))); err != nil {
		return slog.LevelWarn
	}

	return level
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err == nil {
		return
	}

	if errors.Is(err, domain.ErrAborted) {
		fmt.Fprintln(os.Stderr, "Aborted")
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	os.Exit(1)
}
