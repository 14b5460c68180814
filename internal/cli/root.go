// Package cli wires the command surface: generate, validate, batch.
package cli

import (
	"os"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/frherrer/GoE2E-PageForge/internal/config"
)

var (
	cfgFile string
	verbose bool
	dryRun  bool
	log     *logrus.Logger
)

// rootCmd is the base command for pageforge.
var rootCmd = &cobra.Command{
	Use:   "pageforge",
	Short: "Generate test scaffolding from live web pages",
	Long: `GoE2E-PageForge scans a web page for interactive elements and generates
a Page Object, a Ginkgo test skeleton and positive/negative/boundary
test datasets for its form fields.

Configuration comes from pageforge.yaml (working directory first, then
the XDG config path); every command runs without one using built-in
defaults.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: pageforge.yaml, then XDG config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "render artifacts but don't write files")

	// Initialize default logger (refined in PersistentPreRun and applyLogging)
	log = logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves the effective configuration. An explicit --config path
// must load; otherwise a pageforge.yaml in the working directory or the XDG
// config home is used when present, and built-in defaults when not.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	if _, err := os.Stat("pageforge.yaml"); err == nil {
		return config.Load("pageforge.yaml")
	}
	if path, err := xdg.SearchConfigFile("pageforge/pageforge.yaml"); err == nil {
		return config.Load(path)
	}
	return config.DefaultConfig(), nil
}

// applyLogging finishes logger setup from the loaded config. The --verbose
// flag outranks the configured level.
func applyLogging(cfg *config.Config) {
	if !verbose && cfg.Logging.Level != "" {
		if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
			log.SetLevel(level)
		}
	}

	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			log.Warnf("Cannot open log file %s: %v", cfg.Logging.File, err)
		} else {
			log.SetOutput(f)
		}
	}
}
