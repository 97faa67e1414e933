package show

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"tableflip.dev/cardboard/pkg/app"
	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/printers"
)

type Show struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Mode    card.DisplayMode
	// Section limits the output to one card.
	Section string
	// JSON prints the stored document shape instead of the dashboard.
	JSON bool
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("no dashboard service")
	}
	d := n.Service.Current()
	if n.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	if n.Section != "" {
		ref, ok := d.Section(n.Section)
		if !ok {
			return card.NotFoundError{Kind: "section", ID: n.Section}
		}
		n.Printer.Section(d, ref)
		return nil
	}
	n.Printer.Dashboard(d, n.Mode)
	return nil
}
