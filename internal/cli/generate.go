package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/frherrer/GoE2E-PageForge/internal/config"
	"github.com/frherrer/GoE2E-PageForge/internal/driver"
	"github.com/frherrer/GoE2E-PageForge/internal/pipeline"
	tmpl "github.com/frherrer/GoE2E-PageForge/internal/template"
)

var generateCmd = &cobra.Command{
	Use:   "generate <name> <url>",
	Short: "Analyze a page and generate its test scaffolding",
	Long: `Scans the page at <url>, resolves a unique locator per interactive
element, synthesizes positive/negative/boundary test data and writes the
scenario bundle: Page Object, test skeleton, dataset and analysis report.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		engine, err := tmpl.NewEngine(cfg.Templates.Directory)
		if err != nil {
			return err
		}

		drv, err := openDriver(cfg)
		if err != nil {
			return err
		}
		defer drv.Close()

		res, err := pipeline.New(drv, cfg, engine, log).Generate(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		printSummary(res, cfg.DryRun)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

// setup loads and validates the config and finishes logger configuration.
// Every generating command starts here.
func setup() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if dryRun {
		cfg.DryRun = true
	}
	applyLogging(cfg)
	return cfg, nil
}

// openDriver launches the production browser session described by cfg.
func openDriver(cfg *config.Config) (driver.Driver, error) {
	headless := true
	if cfg.Browser.Headless != nil {
		headless = *cfg.Browser.Headless
	}
	return driver.NewPlaywright(driver.Options{
		Browser:           cfg.Browser.Name,
		Headless:          headless,
		NavigationTimeout: cfg.Browser.NavigationTimeout.Std(),
		Log:               log,
	})
}

// printSummary reports one finished run: emitted paths first, warnings after.
func printSummary(res *pipeline.Result, dryRun bool) {
	if dryRun {
		color.Yellow("Dry run: scenario %q rendered, nothing written.", res.Scenario)
	} else {
		color.Green("Scenario %q generated.", res.Scenario)
	}
	for _, f := range res.Bundle.Files {
		fmt.Printf("  %s\n", filepath.Join(res.Bundle.Dir, filepath.FromSlash(f.Path)))
	}

	if len(res.Warnings) == 0 {
		return
	}
	color.Yellow("%d warning(s):", len(res.Warnings))
	for _, w := range res.Warnings {
		if w.Field != "" {
			fmt.Printf("  - %s: %s\n", w.Field, w.Message)
		} else {
			fmt.Printf("  - %s\n", w.Message)
		}
	}
}
