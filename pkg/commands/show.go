package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cardboard/pkg/commands/options"
	"tableflip.dev/cardboard/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	ko := &options.KeyOptions{}
	mo := &options.ModeOptions{}
	var section string

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"ls"},
		Short:   "Print the dashboard.",
		Example: `
cardboard show
cardboard show --mode stacked --show-key
cardboard show --section section_2
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, cfg, err := open(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			mode, err := mo.Resolve(s.Current().DisplayMode)
			if err != nil {
				return output.HandleError(err)
			}
			r := show.Show{
				Service: s,
				Printer: printer(s, cfg, ko.ShowKey),
				Mode:    mode,
				Section: section,
				JSON:    output.JSON,
			}
			err = r.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddShowKeyArgs(cmd, ko)
	options.AddModeArg(cmd, mo)
	cmd.Flags().StringVarP(&section, "section", "s", "", "Only print this card.")
	_ = cmd.RegisterFlagCompletionFunc("section", sectionCompletions)

	topLevel.AddCommand(cmd)
}
