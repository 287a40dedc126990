package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	printingapp "github.com/erp/suratjalan/internal/application/printing"
)

// CreateRenderCommand returns the render subcommand
func (f CommandFactory) CreateRenderCommand(flgs *Flags) *cobra.Command {
	c := &cobra.Command{
		Use:   "render",
		Short: "Render a delivery note as PDF",
		Long: `Render a delivery note as PDF.
Without --input the built-in sample document of the variant is rendered.`,
		Example: `  suratjalan render --variant multi-page --output surat-jalan.pdf
  suratjalan render --input doc.json --base64`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cmd, flgs)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			req, err := f.readRequest(flgs.Input)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			svc, closeFn, err := f.CreatePrintService(ctx, flgs, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeFn(); err != nil {
					log.Warn("Failed to close PDF engine", zap.Error(err))
				}
			}()

			var out []byte
			if flgs.Base64 {
				resp, err := svc.GenerateBase64(ctx, flgs.Variant, req)
				if err != nil {
					return err
				}
				if out, err = json.MarshalIndent(resp, "", "  "); err != nil {
					return err
				}
				out = append(out, '\n')
			} else {
				result, err := svc.GeneratePDF(ctx, flgs.Variant, req)
				if err != nil {
					return err
				}
				out = result.Data
				log.Debug("Rendered delivery note",
					zap.Int("pages", result.PageCount),
					zap.String("engine", result.Engine))
			}

			return writeOutput(cmd, flgs.Output, out)
		},
	}
	c.Flags().StringVar(&flgs.Variant, flagMap.Variant.Name, flagMap.Variant.Value, flagMap.Variant.Usage)
	c.Flags().StringVar(&flgs.Engine, flagMap.Engine.Name, flagMap.Engine.Value, flagMap.Engine.Usage)
	c.Flags().StringVar(&flgs.Input, flagMap.Input.Name, flagMap.Input.Value, flagMap.Input.Usage)
	c.Flags().StringVar(&flgs.Output, flagMap.Output.Name, flagMap.Output.Value, flagMap.Output.Usage)
	c.Flags().BoolVar(&flgs.Base64, flagMap.Base64.Name, flagMap.Base64.Value, flagMap.Base64.Usage)
	return c
}

// readRequest decodes the document at path. A missing path or a blank file
// yields nil, which renders the sample document.
func (f CommandFactory) readRequest(path string) (*printingapp.DocumentRequest, error) {
	if path == "" {
		return nil, nil
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(f.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var req printingapp.DocumentRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse input %s: %w", path, err)
	}
	return &req, nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
