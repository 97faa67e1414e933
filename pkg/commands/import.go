package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cardboard/pkg/runner/importer"
)

func addImport(topLevel *cobra.Command) {
	backup := true

	cmd := &cobra.Command{
		Use:   "import <file|url>",
		Short: "Apply an exported dashboard, migrating older versions first.",
		Example: `
cardboard import dashboard.json
cardboard import https://example.com/cardboard.yaml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, cfg, err := open(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			r := importer.Import{
				Service: s,
				Printer: printer(s, cfg, false),
				Source:  args[0],
				Backup:  backup,
			}
			err = r.Do(ctx)
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&backup, "backup", true,
		"Back up the current dashboard before importing.")
	topLevel.AddCommand(cmd)
}
