package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/frherrer/GoE2E-PageForge/internal/driver"
	"github.com/frherrer/GoE2E-PageForge/internal/pipeline"
	tmpl "github.com/frherrer/GoE2E-PageForge/internal/template"
)

var parallel int

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Generate scaffolding for every scenario in a manifest",
	Long: `Reads a YAML manifest of {name, url} pairs and runs the full pipeline
for each entry, every run with its own browser session. At most
--parallel scenarios are generated at once.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		m, err := pipeline.LoadManifest(args[0])
		if err != nil {
			return err
		}

		engine, err := tmpl.NewEngine(cfg.Templates.Directory)
		if err != nil {
			return err
		}

		b := pipeline.Batch{
			Factory: func(ctx context.Context) (driver.Driver, error) {
				return openDriver(cfg)
			},
			Config:   cfg,
			Engine:   engine,
			Log:      log,
			Parallel: parallel,
		}

		results, err := b.Run(cmd.Context(), m)
		for _, res := range results {
			if res == nil {
				continue
			}
			if res.State == pipeline.StateDone {
				printSummary(res, cfg.DryRun)
			} else {
				color.Red("Scenario %q failed.", res.Scenario)
			}
		}
		return err
	},
}

func init() {
	batchCmd.Flags().IntVar(&parallel, "parallel", 2, "maximum scenarios generated at once")
	rootCmd.AddCommand(batchCmd)
}
