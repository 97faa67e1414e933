package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/cardboard/pkg/app"
	"tableflip.dev/cardboard/pkg/store"
)

// Watch reloads the dashboard whenever another process changes it and
// prints one line per change until ctx is done.
type Watch struct {
	Service *app.Service
	Out     io.Writer
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("no dashboard service")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	events, err := n.Service.Watch(ctx)
	if err != nil {
		return err
	}

	faint := color.New(color.Faint)
	_, _ = faint.Fprintln(out, "watching for changes, ctrl-c to stop")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			stamp := time.Now().Format("15:04:05")
			switch ev.Type {
			case store.EventDocumentChanged:
				if err := n.Service.Reload(ctx); err != nil {
					_, _ = color.New(color.FgRed).Fprintf(out, "%s reload failed: %v\n", stamp, err)
					continue
				}
				d := n.Service.Current()
				_, _ = fmt.Fprintf(out, "%s dashboard changed, %d cards\n", stamp, len(d.Sections))
			case store.EventBackupsChanged:
				_, _ = faint.Fprintf(out, "%s backup %s\n", stamp, ev.Key)
			}
		}
	}
}
