package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cardboard/pkg/runner/library"
)

func addMedia(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "media [manifest]",
		Short: "List the media library and the icons it is missing.",
		Example: `
cardboard media
cardboard media ./assets/manifest.json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, cfg, err := open(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			r := library.Media{
				Service:  s,
				Manifest: cfg.Media(),
			}
			if len(args) > 0 {
				r.Manifest = args[0]
			}
			err = r.Do(ctx)
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
