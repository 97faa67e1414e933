package importer

import (
	"context"
	"errors"

	"tableflip.dev/cardboard/pkg/app"
	"tableflip.dev/cardboard/pkg/printers"
	"tableflip.dev/cardboard/pkg/transfer"
)

// Import applies an exported payload, JSON or YAML, read from a file or URL.
type Import struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Source  string
	// Backup snapshots the stored dashboard before it is replaced.
	Backup bool
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("no dashboard service")
	}
	b, err := n.Service.Fetch(ctx, n.Source)
	if err != nil {
		return err
	}
	raw, err := transfer.Decode(b)
	if err != nil {
		return err
	}
	if n.Backup {
		n.Service.Backup(ctx)
	}
	res, err := n.Service.Import(ctx, raw)
	if err != nil {
		return err
	}
	n.Printer.Imported(res)
	return nil
}
