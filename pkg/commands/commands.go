package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/cardboard/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
	root   = &rootOptions{}
)

type rootOptions struct {
	Verbose bool
	Dark    bool
}

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "cardboard",
		Short: base.Wrap80("A dashboard of link cards, reminders and snippets, kept on disk and migrated forward."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&root.Verbose, "verbose", "v", false,
		"Log debug details to stderr.")
	cmd.PersistentFlags().BoolVar(&root.Dark, "dark", false,
		"Use the dark theme colors. Defaults to the stored dark mode.")
	cmd.PersistentFlags().BoolVar(&output.JSON, "json", false,
		"Output as JSON.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addShow(topLevel)
	addAdd(topLevel)
	addDelete(topLevel)
	addMove(topLevel)
	addDue(topLevel)
	addKey(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addMigrate(topLevel)
	addBackup(topLevel)
	addMedia(topLevel)
	addInfo(topLevel)
	addWatch(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
	addVersion(topLevel)
}
