package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frherrer/GoE2E-PageForge/internal/emitter"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scenario-dir>",
	Short: "Validate a previously generated scenario bundle",
	Long: `Checks that every artifact in the bundle is still sound: the Go sources
parse, the dataset satisfies the record invariants (unique ids, known
categories, non-empty field maps) and the analysis report is well formed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := emitter.ValidateBundle(args[0]); err != nil {
			return err
		}
		fmt.Printf("Bundle %q is valid.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
