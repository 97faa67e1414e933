package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cardboard/pkg/commands/options"
	"tableflip.dev/cardboard/pkg/runner/due"
)

func addDue(topLevel *cobra.Command) {
	ko := &options.KeyOptions{}
	months := 0

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List reminders, most urgent first.",
		Example: `
cardboard due
cardboard due --calendar 2
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, cfg, err := open(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			r := due.Due{
				Service: s,
				Printer: printer(s, cfg, ko.ShowKey),
				Months:  months,
				JSON:    output.JSON,
			}
			err = r.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddShowKeyArgs(cmd, ko)
	cmd.Flags().IntVar(&months, "calendar", 0,
		"Also print this many months of calendar, starting with the current one.")

	topLevel.AddCommand(cmd)
}
