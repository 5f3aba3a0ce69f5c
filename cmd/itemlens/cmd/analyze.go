package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/itemlens/itemlens/internal/batch"
	"github.com/itemlens/itemlens/internal/utils"
)

const (
	outputFormatJSON = "json"
	outputFormatCSV  = "csv"
	outputFormatText = "text"
)

// analyzeCmd represents the analyze command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Analyze a single product photo",
	Long: `Analyze one photo of a second-hand item and print the structured
product record.

Supported formats: JPEG, PNG, BMP

Examples:
  itemlens analyze photo.jpg
  itemlens analyze photo.jpg --format text
  itemlens analyze photo.jpg --output record.json`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input file provided")
		}
		if len(args) > 1 {
			return errors.New("analyze takes a single image; use the batch command for multiple files")
		}
		path := args[0]
		if !utils.IsSupportedImage(path) {
			return fmt.Errorf("unsupported image format: %s", path)
		}

		cfg := GetConfig()

		format := cfg.Output.Format
		if cmd.Flags().Changed("format") {
			format, _ = cmd.Flags().GetString("format")
		}
		outputFile := cfg.Output.File
		if cmd.Flags().Changed("output") {
			outputFile, _ = cmd.Flags().GetString("output")
		}
		if format != outputFormatJSON && format != outputFormatCSV && format != outputFormatText {
			return fmt.Errorf("invalid output format: %s (must be one of: json, csv, text)", format)
		}

		service := buildAnalyzer(cfg)
		res, err := service.AnalyzeFile(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		var output string
		switch format {
		case outputFormatJSON:
			var bts []byte
			if cfg.Output.Pretty {
				bts, err = json.MarshalIndent(res, "", "  ")
			} else {
				bts, err = json.Marshal(res)
			}
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
			output = string(bts) + "\n"
		default:
			// Single-item batch result reuses the batch formatters.
			wrapped := &batch.Result{Items: []batch.Item{{File: path, Result: &res}}}
			output, err = wrapped.FormatResults(format)
			if err != nil {
				return err
			}
		}

		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("format", "f", "json", "output format (json, csv, text)")
	analyzeCmd.Flags().StringP("output", "o", "", "output file (default is stdout)")
}
