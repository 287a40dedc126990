package cmd_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	printingapp "github.com/erp/suratjalan/internal/application/printing"
	"github.com/erp/suratjalan/internal/cmd"
	"github.com/erp/suratjalan/internal/domain/printing"
	infra "github.com/erp/suratjalan/internal/infrastructure/printing"
)

func fpdfService(_ context.Context, _ *cmd.Flags, log *zap.Logger) (*printingapp.PrintService, func() error, error) {
	renderer := infra.NewRenderer(infra.NewFpdfRenderer(infra.FpdfConfig{}), log)
	return printingapp.NewPrintService(renderer, log), renderer.Close, nil
}

func run(t *testing.T, f cmd.CommandFactory, args ...string) (string, error) {
	t.Helper()
	root := f.CreateRootCommand(&cmd.Flags{})
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestRenderCommand_Sample(t *testing.T) {
	f := cmd.CommandFactory{CreatePrintService: fpdfService}

	out, err := run(t, f, "render", "--variant", "multi-page")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "%PDF-"))
}

func TestRenderCommand_OutputFile(t *testing.T) {
	f := cmd.CommandFactory{CreatePrintService: fpdfService}
	path := filepath.Join(t.TempDir(), "out.pdf")

	out, err := run(t, f, "render", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRenderCommand_Base64FromStdin(t *testing.T) {
	req := printingapp.SampleRequest(printing.VariantSinglePage)
	req.Number = "SJ/CLI/001"
	body, err := json.Marshal(req)
	require.NoError(t, err)

	f := cmd.CommandFactory{
		CreatePrintService: fpdfService,
		Stdin:              bytes.NewReader(body),
	}

	out, err := run(t, f, "render", "--input", "-", "--base64")
	require.NoError(t, err)

	var resp printingapp.Base64Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "surat-jalan.pdf", resp.FileName)
	assert.Equal(t, "application/pdf", resp.ContentType)
	pdf, err := base64.StdEncoding.DecodeString(resp.Base64)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestRenderCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	invalidJSON := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalidJSON, []byte(`{"number":`), 0o644))

	incomplete := filepath.Join(dir, "incomplete.json")
	require.NoError(t, os.WriteFile(incomplete, []byte(`{"number":"SJ/1"}`), 0o644))

	tests := []struct {
		name    string
		factory cmd.CommandFactory
		args    []string
		wantErr string
	}{
		{
			name:    "unknown variant",
			factory: cmd.CommandFactory{CreatePrintService: fpdfService},
			args:    []string{"render", "--variant", "a5"},
			wantErr: "Unknown layout variant",
		},
		{
			name:    "missing input file",
			factory: cmd.CommandFactory{CreatePrintService: fpdfService},
			args:    []string{"render", "--input", filepath.Join(dir, "nope.json")},
			wantErr: "failed to read input",
		},
		{
			name:    "malformed input",
			factory: cmd.CommandFactory{CreatePrintService: fpdfService},
			args:    []string{"render", "--input", invalidJSON},
			wantErr: "failed to parse input",
		},
		{
			name:    "input failing validation",
			factory: cmd.CommandFactory{CreatePrintService: fpdfService},
			args:    []string{"render", "--input", incomplete},
			wantErr: "Request validation failed",
		},
		{
			name: "service setup failure",
			factory: cmd.CommandFactory{
				CreatePrintService: func(context.Context, *cmd.Flags, *zap.Logger) (*printingapp.PrintService, func() error, error) {
					return nil, nil, errors.New("no browser")
				},
			},
			args:    []string{"render"},
			wantErr: "no browser",
		},
		{
			name:    "positional arguments",
			factory: cmd.CommandFactory{CreatePrintService: fpdfService},
			args:    []string{"render", "extra"},
			wantErr: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.factory, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSampleCommand(t *testing.T) {
	f := cmd.CommandFactory{}

	out, err := run(t, f, "sample", "--variant", "multi-page")
	require.NoError(t, err)

	var req printingapp.DocumentRequest
	require.NoError(t, json.Unmarshal([]byte(out), &req))
	assert.Len(t, req.Items, printingapp.SampleMultiPageItems)
	assert.NoError(t, printingapp.ValidateRequest(&req))

	_, err = run(t, f, "sample", "--variant", "landscape")
	assert.Error(t, err)
}

func TestSampleOutputRoundTripsThroughRender(t *testing.T) {
	sample, err := run(t, cmd.CommandFactory{}, "sample")
	require.NoError(t, err)

	f := cmd.CommandFactory{
		CreatePrintService: fpdfService,
		Stdin:              strings.NewReader(sample),
	}
	out, err := run(t, f, "render", "--input", "-")
	require.NoError(t, err)

	direct, err := run(t, cmd.CommandFactory{CreatePrintService: fpdfService}, "render")
	require.NoError(t, err)
	assert.Equal(t, direct, out)
}
