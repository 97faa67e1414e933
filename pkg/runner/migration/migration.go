package migration

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/cardboard/pkg/app"
	"tableflip.dev/cardboard/pkg/migrate"
	"tableflip.dev/cardboard/pkg/printers"
)

type Migrate struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	// Steps only lists the migration steps newer than the stored version.
	Steps bool
}

func (n *Migrate) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("no dashboard service")
	}
	if n.Steps {
		from := n.Service.Current().SchemaVersion
		steps := migrate.Steps(from)
		if len(steps) == 0 {
			fmt.Printf("schema version %d is current\n", from)
		}
		for i, s := range steps {
			fmt.Printf("%d. %s\n", i+1, s)
		}
		return nil
	}
	report, backup, err := n.Service.Migrate(ctx)
	if err != nil {
		return err
	}
	n.Printer.Migration(report, backup)
	return nil
}
