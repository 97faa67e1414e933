package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/cardboard/pkg/app"
	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/commands/options"
	"tableflip.dev/cardboard/pkg/runner/add"
	"tableflip.dev/cardboard/pkg/runner/edit"
	"tableflip.dev/cardboard/pkg/store"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a card or an item.",
	}

	addAddSection(cmd)
	addAddItem(cmd)
	topLevel.AddCommand(cmd)
}

func addAddSection(parent *cobra.Command) {
	eo := &options.EditOptions{}

	cmd := &cobra.Command{
		Use:   "section <title>",
		Short: "Add an empty card at the end of both layouts.",
		Example: `
cardboard add section Daily Tools
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, cfg, err := open(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			r := add.Section{
				Session: session(s, cfg, eo),
				Title:   strings.Join(args, " "),
			}
			if err = r.Do(ctx); err == nil && output.JSON {
				return output.Print(map[string]string{"id": r.ID})
			}
			return output.HandleError(err)
		},
	}

	options.AddEditArgs(cmd, eo)
	parent.AddCommand(cmd)
}

func addAddItem(parent *cobra.Command) {
	eo := &options.EditOptions{}
	to := &options.TargetOptions{}
	fo := &options.FieldOptions{}

	cmd := &cobra.Command{
		Use:   "item <kind>",
		Short: "Add an icon, reminder, subtask or copyPaste item to a card.",
		Long: base.Wrap80(`Add an item to a card. Kind is one of icons, reminders, subtasks or copyPaste.
Fields are given with --set and are coerced the same way stored items are.`),
		Example: `
cardboard add item subtask --section section_1 --set text=Inbox --set url=https://mail.example.com
cardboard add item reminder -s section_2 --set title=Rent --set type=days \
  --set schedule.type=monthly --set schedule.dayOfMonth=1
cardboard add item reminder -s section_2 --set title=Budget --set type=interval \
  --set interval=500 --set currentNumber=120 --set intervalType=limit --set intervalUnit=dollar
`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			kind, err := card.ParseKind(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			if err := to.Validate(); err != nil {
				return output.HandleError(err)
			}
			fields, err := fo.Fields()
			if err != nil {
				return output.HandleError(err)
			}

			ctx := context.Background()
			s, cfg, err := open(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			r := add.Item{
				Session:  session(s, cfg, eo),
				Section:  to.Section,
				Subtitle: to.Subtitle,
				Kind:     kind,
				Fields:   fields,
			}
			if err = r.Do(ctx); err == nil && output.JSON {
				return output.Print(map[string]string{"key": r.Key})
			}
			return output.HandleError(err)
		},
	}

	options.AddEditArgs(cmd, eo)
	options.AddTargetArgs(cmd, to)
	options.AddFieldArgs(cmd, fo)
	_ = cmd.RegisterFlagCompletionFunc("section", sectionCompletions)
	parent.AddCommand(cmd)
}

// session builds the edit session shared by the mutating commands. JSON
// output replaces the printed card.
func session(s *app.Service, cfg store.Config, eo *options.EditOptions) edit.Session {
	es := edit.Session{Service: s, DryRun: eo.DryRun}
	if !output.JSON {
		es.Printer = printer(s, cfg, true)
	}
	return es
}

func kindNames() []string {
	kinds := card.AllKinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
