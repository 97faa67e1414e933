package options

import (
	"github.com/spf13/cobra"
)

// EditOptions
type EditOptions struct {
	DryRun bool
}

func AddEditArgs(cmd *cobra.Command, o *EditOptions) {
	cmd.Flags().BoolVar(&o.DryRun, "dry-run", false,
		"Show the result without saving it.")
}
