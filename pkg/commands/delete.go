package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/commands/options"
	"tableflip.dev/cardboard/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Delete a card or an item.",
	}

	addDeleteSection(cmd)
	addDeleteItem(cmd)
	topLevel.AddCommand(cmd)
}

func addDeleteSection(parent *cobra.Command) {
	eo := &options.EditOptions{}

	cmd := &cobra.Command{
		Use:   "section <id>",
		Short: "Delete a card with its content, colors, notes and collapse state.",
		Example: `
cardboard delete section section_3
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: sectionCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, cfg, err := open(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			r := remove.Section{
				Session: session(s, cfg, eo),
				ID:      args[0],
			}
			err = r.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddEditArgs(cmd, eo)
	parent.AddCommand(cmd)
}

func addDeleteItem(parent *cobra.Command) {
	eo := &options.EditOptions{}
	to := &options.TargetOptions{}

	cmd := &cobra.Command{
		Use:   "item <kind> <key>",
		Short: "Delete an item by key.",
		Example: `
cardboard delete item subtask item_2 --section section_1
cardboard delete item icons icon_1 -s section_4 --subtitle Work
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			kind, err := card.ParseKind(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			if err := to.Validate(); err != nil {
				return output.HandleError(err)
			}
			ctx := context.Background()
			s, cfg, err := open(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			r := remove.Item{
				Session:  session(s, cfg, eo),
				Section:  to.Section,
				Subtitle: to.Subtitle,
				Kind:     kind,
				Key:      args[1],
			}
			err = r.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddEditArgs(cmd, eo)
	options.AddTargetArgs(cmd, to)
	_ = cmd.RegisterFlagCompletionFunc("section", sectionCompletions)
	parent.AddCommand(cmd)
}
