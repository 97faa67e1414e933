package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cardboard/pkg/runner/migration"
)

func addMigrate(topLevel *cobra.Command) {
	steps := false

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Back up the stored dashboard and upgrade it to the current schema.",
		Example: `
cardboard migrate
cardboard migrate --steps
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, cfg, err := open(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			r := migration.Migrate{
				Service: s,
				Printer: printer(s, cfg, false),
				Steps:   steps,
			}
			err = r.Do(ctx)
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&steps, "steps", false,
		"List the migration steps that would run, without running them.")
	topLevel.AddCommand(cmd)
}
