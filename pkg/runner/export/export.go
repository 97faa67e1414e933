package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/natefinch/atomic"

	"tableflip.dev/cardboard/pkg/app"
	"tableflip.dev/cardboard/pkg/transfer"
)

type Export struct {
	Service *app.Service
	Format  transfer.Format
	// File is replaced atomically. Empty writes to stdout.
	File string
	// OverrideDir also receives the JSON export for other devices.
	OverrideDir string
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("no dashboard service")
	}
	var buf bytes.Buffer
	if err := transfer.Encode(&buf, n.Service.Export(), n.Format); err != nil {
		return err
	}

	if n.File == "" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := atomic.WriteFile(n.File, &buf); err != nil {
		return fmt.Errorf("write %s: %w", n.File, err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "exported to %s\n", n.File)

	if ok, err := n.Service.WriteOverride(ctx, n.OverrideDir); err != nil {
		return err
	} else if ok {
		_, _ = fmt.Fprintf(os.Stderr, "override written to %s\n", n.OverrideDir)
	}
	return nil
}
