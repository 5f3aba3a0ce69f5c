package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/itemlens/itemlens/internal/batch"
	"github.com/itemlens/itemlens/internal/config"
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch <path>...",
	Short: "Analyze many product photos in parallel",
	Long: `Analyze a set of photos, given as files or directories, using a pool
of parallel workers.

Examples:
  itemlens batch ./photos
  itemlens batch ./photos --recursive --workers 8
  itemlens batch ./photos --include "item_*.jpg" --format csv --output results.csv`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input paths provided")
		}

		cfg := GetConfig()
		batchConfig := configToBatchConfig(cfg, cmd)

		var progress batch.ProgressCallback
		if batchConfig.ShowProgress && !batchConfig.Quiet {
			progress = batch.NewConsoleProgressCallback(os.Stderr, "Analyzing: ")
		}

		service := buildAnalyzer(cfg)
		res, err := batch.Process(cmd.Context(), service, args, batchConfig, progress)
		if err != nil {
			return err
		}

		if err := res.SaveResults(batchConfig.Format, batchConfig.OutputFile, batchConfig.Quiet); err != nil {
			return err
		}

		showStats, _ := cmd.Flags().GetBool("stats")
		if showStats {
			res.PrintStats(batchConfig.Quiet)
		}
		return nil
	},
}

// configToBatchConfig merges the layered configuration with batch CLI flags.
func configToBatchConfig(cfg *config.Config, cmd *cobra.Command) batch.Config {
	batchConfig := batch.Config{
		Workers:         cfg.Batch.Workers,
		Recursive:       cfg.Batch.Recursive,
		IncludePatterns: cfg.Batch.IncludePatterns,
		ExcludePatterns: cfg.Batch.ExcludePatterns,
		ContinueOnError: cfg.Batch.ContinueOnError,
		Format:          cfg.Output.Format,
		OutputFile:      cfg.Output.File,
		ShowProgress:    true,
	}

	if cmd.Flags().Changed("workers") {
		batchConfig.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("recursive") {
		batchConfig.Recursive, _ = cmd.Flags().GetBool("recursive")
	}
	if cmd.Flags().Changed("include") {
		batchConfig.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
	}
	if cmd.Flags().Changed("exclude") {
		batchConfig.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")
	}
	if cmd.Flags().Changed("continue-on-error") {
		batchConfig.ContinueOnError, _ = cmd.Flags().GetBool("continue-on-error")
	}
	if cmd.Flags().Changed("format") {
		batchConfig.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("output") {
		batchConfig.OutputFile, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("quiet") {
		batchConfig.Quiet, _ = cmd.Flags().GetBool("quiet")
	}
	if cmd.Flags().Changed("progress") {
		batchConfig.ShowProgress, _ = cmd.Flags().GetBool("progress")
	}

	return batchConfig
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntP("workers", "w", 4, "number of parallel workers")
	batchCmd.Flags().BoolP("recursive", "r", false, "recurse into subdirectories")
	batchCmd.Flags().StringSlice("include", nil, "glob patterns for files to include")
	batchCmd.Flags().StringSlice("exclude", nil, "glob patterns for files to exclude")
	batchCmd.Flags().Bool("continue-on-error", true, "keep processing after individual failures")
	batchCmd.Flags().StringP("format", "f", "json", "output format (json, csv, text)")
	batchCmd.Flags().StringP("output", "o", "", "output file (default is stdout)")
	batchCmd.Flags().Bool("progress", true, "show a progress bar")
	batchCmd.Flags().BoolP("quiet", "q", false, "suppress progress and status output")
	batchCmd.Flags().Bool("stats", false, "print processing statistics")
}
