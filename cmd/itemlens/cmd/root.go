// Package cmd implements the itemlens command-line interface.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/itemlens/itemlens/internal/analyze"
	"github.com/itemlens/itemlens/internal/config"
	"github.com/itemlens/itemlens/internal/labeler"
	"github.com/itemlens/itemlens/internal/ocr"
	"github.com/itemlens/itemlens/internal/version"
)

var (
	// Global configuration loader.
	configLoader *config.Loader
	// Global configuration.
	globalConfig *config.Config
	// Configuration file path.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "itemlens",
	Short: "Identify second-hand products from photos",
	Long: `itemlens turns photos of second-hand items into structured product
records. It runs OCR over the photo, optionally asks a local vision model for
image labels, and applies heuristics to extract brand, product line, model
number, capacity, category, condition, price, and dimensions.

Examples:
  itemlens analyze photo.jpg
  itemlens batch ./photos --recursive --format csv
  itemlens serve --port 8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, _ := cmd.PersistentFlags().GetBool("version")
		if v {
			ver, commit, date := version.Info()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "itemlens %s (commit: %s, built: %s)\n", ver, commit, date)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCommand returns the root command for testing purposes.
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.config/itemlens, /etc/itemlens)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("enable-labeler", false, "query the local vision model for image labels")
	rootCmd.PersistentFlags().Bool("version", false, "print version information and exit")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("labeler.enabled", rootCmd.PersistentFlags().Lookup("enable-labeler"))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if globalConfig == nil {
			initConfig()
		}

		var logLevel slog.Level
		if globalConfig.Verbose {
			logLevel = slog.LevelDebug
		} else {
			switch globalConfig.LogLevel {
			case "debug":
				logLevel = slog.LevelDebug
			case "warn":
				logLevel = slog.LevelWarn
			case "error":
				logLevel = slog.LevelError
			default:
				logLevel = slog.LevelInfo
			}
		}

		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	configLoader = config.NewLoader()

	var err error
	if cfgFile != "" {
		globalConfig, err = configLoader.LoadWithFile(cfgFile)
	} else {
		globalConfig, err = configLoader.Load()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}

// GetConfig returns the global configuration with CLI flag values applied.
func GetConfig() *config.Config {
	if globalConfig == nil {
		initConfig()
	}

	// Re-unmarshal so flags bound after the initial load are included.
	var cfg config.Config
	if err := GetConfigLoader().GetViper().Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling updated configuration: %v\n", err)
		return globalConfig
	}
	return &cfg
}

// GetConfigLoader returns the global configuration loader.
func GetConfigLoader() *config.Loader {
	if configLoader == nil {
		configLoader = config.NewLoader()
	}
	return configLoader
}

// buildAnalyzer wires the OCR engine and labeler into an analysis service.
func buildAnalyzer(cfg *config.Config) *analyze.Service {
	engine := ocr.NewTesseract(ocr.TesseractConfig{
		Binary:   cfg.OCR.Binary,
		Language: cfg.OCR.Language,
		PSM:      cfg.OCR.PSM,
	})

	var lab labeler.Labeler = labeler.Disabled{}
	if cfg.Labeler.Enabled {
		lab = labeler.NewOllama(labeler.OllamaConfig{
			Endpoint:  cfg.Labeler.Endpoint,
			Model:     cfg.Labeler.Model,
			Timeout:   time.Duration(cfg.Labeler.TimeoutSeconds) * time.Second,
			MaxLabels: cfg.Labeler.MaxLabels,
		})
	}

	return analyze.NewService(analyze.Config{
		MinTextLength:        cfg.Analysis.MinTextLength,
		LabelConfidenceFloor: cfg.Analysis.LabelConfidenceFloor,
	}, engine, lab, slog.Default())
}
