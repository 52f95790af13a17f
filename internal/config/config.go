// =============================================================================
// XLCut - Configuration Module
// =============================================================================
//
// This module loads the application configuration. XLCut is designed to run
// with no arguments and no configuration at all: drop XML files into the
// source folder, run the binary, pick up the workbook from the output
// folder. The YAML config file is therefore optional: when it is missing,
// the defaults below apply.
//
// CONFIGURATION FILE (config.yaml):
//   source_dir:         ./source
//   output_dir:         ./output
//   output_name_format: export_{timestamp}.xlsx
//   log_level:          info
//   disable_sales_report: false
//   styling:
//     header_color:     "4472C4"
//     ...
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// SourceDir is the directory scanned for input XML files.
	// Default: "./source"
	SourceDir string `yaml:"source_dir"`

	// OutputDir is the directory where the generated workbook is placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// OutputNameFormat is the format for the workbook file name.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {time}      - Current time (HHMMSS)
	// The timestamp default means repeated runs never overwrite prior
	// output.
	// Default: "export_{timestamp}.xlsx"
	OutputNameFormat string `yaml:"output_name_format"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// DisableSalesReport turns off the "Items Sold" sheet that is built
	// from point-of-sale transaction documents.
	// Default: false (the sheet is produced when sale data is present)
	DisableSalesReport bool `yaml:"disable_sales_report"`

	// Styling controls workbook formatting.
	Styling StylingConfig `yaml:"styling"`
}

// StylingConfig holds the workbook formatting settings. Colors are RGB hex
// strings without a leading '#'.
type StylingConfig struct {
	// HeaderColor is the fill color of header rows on data sheets.
	// Default: "4472C4"
	HeaderColor string `yaml:"header_color"`

	// HeaderFontColor is the font color of header rows.
	// Default: "FFFFFF"
	HeaderFontColor string `yaml:"header_font_color"`

	// StripeColor is the fill color of even data rows on data sheets.
	// Default: "E9EDF4"
	StripeColor string `yaml:"stripe_color"`

	// SalesHeaderColor is the header fill on the Items Sold sheet.
	// Default: "2E7D32"
	SalesHeaderColor string `yaml:"sales_header_color"`

	// SalesStripeColor is the even-row fill on the Items Sold sheet.
	// Default: "E8F5E9"
	SalesStripeColor string `yaml:"sales_stripe_color"`

	// MaxColumnWidth caps the auto-fitted column width.
	// Default: 50
	MaxColumnWidth float64 `yaml:"max_column_width"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file. A missing
// file is not an error: the returned configuration then carries the
// defaults only.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file: run entirely on defaults.
	} else {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration
// options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.SourceDir == "" {
		config.SourceDir = "./source"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "export_{timestamp}.xlsx"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.Styling.HeaderColor == "" {
		config.Styling.HeaderColor = "4472C4"
	}
	if config.Styling.HeaderFontColor == "" {
		config.Styling.HeaderFontColor = "FFFFFF"
	}
	if config.Styling.StripeColor == "" {
		config.Styling.StripeColor = "E9EDF4"
	}
	if config.Styling.SalesHeaderColor == "" {
		config.Styling.SalesHeaderColor = "2E7D32"
	}
	if config.Styling.SalesStripeColor == "" {
		config.Styling.SalesStripeColor = "E8F5E9"
	}
	if config.Styling.MaxColumnWidth == 0 {
		config.Styling.MaxColumnWidth = 50
	}
}

// validateMainConfig validates the main configuration and creates the
// source and output directories when they do not exist yet.
func validateMainConfig(config *MainConfig) error {
	dirs := []string{
		config.SourceDir,
		config.OutputDir,
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}
