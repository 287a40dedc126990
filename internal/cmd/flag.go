package cmd

import (
	"github.com/erp/suratjalan/internal/domain/printing"
)

// Flags holds the values of every command line flag
type Flags struct {
	Config  string
	Variant string
	Engine  string
	Input   string
	Output  string
	Base64  bool
	Verbose bool
}

var flagMap = FlagMap{
	Config: FlagSet[string]{
		Name:  "config",
		Usage: "Path to a config.toml file. Defaults to ./config.toml when present.",
		Value: "",
	},
	Variant: FlagSet[string]{
		Name:  "variant",
		Usage: "Layout variant, single-page or multi-page.",
		Value: printing.VariantSinglePage.String(),
	},
	Engine: FlagSet[string]{
		Name:  "engine",
		Usage: "PDF engine, fpdf or chromedp. Overrides printing.engine from the config.",
		Value: "",
	},
	Input: FlagSet[string]{
		Name:  "input",
		Usage: "Delivery note JSON file, or - for stdin. The sample document is rendered when omitted.",
		Value: "",
	},
	Output: FlagSet[string]{
		Name:  "output",
		Usage: "File the result is written to, or - for stdout.",
		Value: "-",
	},
	Base64: FlagSet[bool]{
		Name:  "base64",
		Usage: "Write the {fileName, contentType, base64} JSON instead of raw PDF bytes.",
		Value: false,
	},
	Verbose: FlagSet[bool]{
		Name:  "verbose",
		Usage: "Log at debug level to stderr.",
		Value: false,
	},
}

type FlagSet[T any] struct {
	Name  string
	Usage string
	Value T
}

type FlagMap struct {
	Config  FlagSet[string]
	Variant FlagSet[string]
	Engine  FlagSet[string]
	Input   FlagSet[string]
	Output  FlagSet[string]
	Base64  FlagSet[bool]
	Verbose FlagSet[bool]
}
