package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/cardboard/pkg/card"
)

// ModeOptions
type ModeOptions struct {
	Mode string
}

func AddModeArg(cmd *cobra.Command, o *ModeOptions) {
	cmd.Flags().StringVarP(&o.Mode, "mode", "m", "",
		`Layout to use, "normal" or "stacked". Defaults to the stored display mode.`)
}

// Resolve returns the requested mode, or fallback when none was given.
func (o *ModeOptions) Resolve(fallback card.DisplayMode) (card.DisplayMode, error) {
	if o.Mode == "" {
		if fallback == "" {
			return card.Normal, nil
		}
		return fallback, nil
	}
	mode, ok := card.ParseDisplayMode(o.Mode)
	if !ok {
		return "", fmt.Errorf("unknown mode %q, want normal or stacked", o.Mode)
	}
	return mode, nil
}
