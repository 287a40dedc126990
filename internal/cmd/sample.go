package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	printingapp "github.com/erp/suratjalan/internal/application/printing"
	"github.com/erp/suratjalan/internal/domain/printing"
)

// CreateSampleCommand returns the sample subcommand, which prints the
// sample document of a variant as JSON. The output is a valid --input file.
func (f CommandFactory) CreateSampleCommand(flgs *Flags) *cobra.Command {
	c := &cobra.Command{
		Use:   "sample",
		Short: "Print the sample delivery note as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := printing.ParseVariant(flgs.Variant)
			if err != nil {
				return err
			}
			sample := printingapp.SampleRequest(variant)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sample)
		},
	}
	c.Flags().StringVar(&flgs.Variant, flagMap.Variant.Name, flagMap.Variant.Value, flagMap.Variant.Usage)
	return c
}
