package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/commands/options"
	"tableflip.dev/cardboard/pkg/runner/move"
)

func addMove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "move",
		Aliases: []string{"mv"},
		Short:   "Reorder cards or items. Positions start at 0.",
	}

	addMoveSection(cmd)
	addMoveItem(cmd)
	topLevel.AddCommand(cmd)
}

func positions(args []string) (int, int, error) {
	from, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid position %q", args[0])
	}
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid position %q", args[1])
	}
	return from, to, nil
}

func addMoveSection(parent *cobra.Command) {
	eo := &options.EditOptions{}
	mo := &options.ModeOptions{}

	cmd := &cobra.Command{
		Use:   "section <from> <to>",
		Short: "Move a card within one layout. Pairs split by the move are unpaired.",
		Example: `
cardboard move section 3 0
cardboard move section 0 2 --mode stacked
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			from, to, err := positions(args)
			if err != nil {
				return output.HandleError(err)
			}
			mode, err := mo.Resolve(card.Normal)
			if err != nil {
				return output.HandleError(err)
			}
			ctx := context.Background()
			s, cfg, err := open(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			r := move.Section{
				Session: session(s, cfg, eo),
				From:    from,
				To:      to,
			}
			r.Mode = mode
			err = r.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddEditArgs(cmd, eo)
	options.AddModeArg(cmd, mo)
	parent.AddCommand(cmd)
}

func addMoveItem(parent *cobra.Command) {
	eo := &options.EditOptions{}
	to := &options.TargetOptions{}

	cmd := &cobra.Command{
		Use:   "item <kind> <from> <to>",
		Short: "Move an item within its bucket.",
		Example: `
cardboard move item subtasks 2 0 --section section_1
`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			kind, err := card.ParseKind(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			if err := to.Validate(); err != nil {
				return output.HandleError(err)
			}
			from, dest, err := positions(args[1:])
			if err != nil {
				return output.HandleError(err)
			}
			ctx := context.Background()
			s, cfg, err := open(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			r := move.Item{
				Session:  session(s, cfg, eo),
				Section:  to.Section,
				Subtitle: to.Subtitle,
				Kind:     kind,
				From:     from,
				To:       dest,
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
