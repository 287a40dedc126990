// Package cmd implements the suratjalan command line tool, which renders
// delivery notes without starting the HTTP server.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	printingapp "github.com/erp/suratjalan/internal/application/printing"
	"github.com/erp/suratjalan/internal/infrastructure/config"
	"github.com/erp/suratjalan/internal/infrastructure/logger"
	infra "github.com/erp/suratjalan/internal/infrastructure/printing"
)

// CommandFactory builds the command tree. Its fields are replaced in tests.
type CommandFactory struct {
	CreatePrintService func(ctx context.Context, flags *Flags, log *zap.Logger) (*printingapp.PrintService, func() error, error)
	Stdin              io.Reader
}

var defaultCommandFactory = CommandFactory{
	CreatePrintService: createPrintService,
	Stdin:              os.Stdin,
}

// CreateRootCommand returns the suratjalan command with its subcommands attached
func (f CommandFactory) CreateRootCommand(flgs *Flags) *cobra.Command {
	root := &cobra.Command{
		Use:           "suratjalan",
		Short:         "Render Surat Jalan delivery notes as PDF",
		Long:          `suratjalan renders Surat Jalan delivery notes in the single-page or multi-page layout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flgs.Config, flagMap.Config.Name, flagMap.Config.Value, flagMap.Config.Usage)
	root.PersistentFlags().BoolVar(&flgs.Verbose, flagMap.Verbose.Name, flagMap.Verbose.Value, flagMap.Verbose.Usage)

	root.AddCommand(f.CreateRenderCommand(flgs))
	root.AddCommand(f.CreateSampleCommand(flgs))
	return root
}

// createPrintService wires the configured engine into a PrintService.
// The returned func releases the engine.
func createPrintService(_ context.Context, flags *Flags, log *zap.Logger) (*printingapp.PrintService, func() error, error) {
	cfg, err := config.LoadFile(flags.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flags.Engine != "" {
		cfg.Printing.Engine = flags.Engine
	}

	engine, err := infra.NewEngine(cfg.Printing, log)
	if err != nil {
		return nil, nil, err
	}
	renderer := infra.NewRenderer(engine, log)
	svc := printingapp.NewPrintService(renderer, log,
		printingapp.WithRenderTimeout(cfg.Printing.RenderTimeout),
	)
	return svc, renderer.Close, nil
}

// newLogger logs to stderr so stdout stays free for the rendered output
func newLogger(cmd *cobra.Command, flags *Flags) (*zap.Logger, error) {
	level := "warn"
	if flags.Verbose {
		level = "debug"
	}
	return logger.NewWithWriter(&logger.Config{Level: level, Format: "console"}, cmd.ErrOrStderr())
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	root := defaultCommandFactory.CreateRootCommand(&Flags{})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
