package backup

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/cardboard/pkg/app"
	"tableflip.dev/cardboard/pkg/printers"
)

type Backup struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	List    bool
	// Restore names the backup to make live.
	Restore string
}

func (n *Backup) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("no dashboard service")
	}
	switch {
	case n.List:
		n.Printer.Backups(n.Service.Backups(ctx))
	case n.Restore != "":
		if err := n.Service.RestoreBackup(ctx, n.Restore); err != nil {
			return err
		}
		fmt.Printf("restored %s\n", n.Restore)
	default:
		name := n.Service.Backup(ctx)
		if name == "" {
			return errors.New("nothing to back up")
		}
		fmt.Printf("backed up as %s\n", name)
	}
	return nil
}
