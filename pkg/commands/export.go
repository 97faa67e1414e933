package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cardboard/pkg/commands/options"
	"tableflip.dev/cardboard/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	fo := &options.FormatOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a self-contained snapshot of the dashboard.",
		Example: `
cardboard export > dashboard.json
cardboard export --format yaml -o dashboard.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			format, err := fo.Parse()
			if err != nil {
				return output.HandleError(err)
			}
			ctx := context.Background()
			s, cfg, err := open(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			r := export.Export{
				Service: s,
				Format:  format,
				File:    fo.File,
			}
			if fo.File != "" {
				r.OverrideDir = cfg.OverrideDir()
			}
			err = r.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddFormatArgs(cmd, fo)
	topLevel.AddCommand(cmd)
}
