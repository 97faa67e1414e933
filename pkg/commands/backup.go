package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cardboard/pkg/runner/backup"
)

func addBackup(topLevel *cobra.Command) {
	list := false
	restore := ""

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the stored dashboard, list snapshots or restore one.",
		Example: `
cardboard backup
cardboard backup --list
cardboard backup --restore 20240506T070809.000000000Z
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, cfg, err := open(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			if list && output.JSON {
				return output.Print(s.Backups(ctx))
			}
			r := backup.Backup{
				Service: s,
				Printer: printer(s, cfg, false),
				List:    list,
				Restore: restore,
			}
			err = r.Do(ctx)
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List backups.")
	cmd.Flags().StringVar(&restore, "restore", "", "Make the named backup live.")
	_ = cmd.RegisterFlagCompletionFunc("restore", backupCompletions)
	topLevel.AddCommand(cmd)
}
