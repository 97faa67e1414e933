package options

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/cardboard/pkg/card"
)

// TargetOptions select the bucket an item command works on.
type TargetOptions struct {
	Section  string
	Subtitle string
}

func AddTargetArgs(cmd *cobra.Command, o *TargetOptions) {
	cmd.Flags().StringVarP(&o.Section, "section", "s", "",
		"Id of the card.")
	cmd.Flags().StringVar(&o.Subtitle, "subtitle", card.DefaultSubtitle,
		"Subtitle group inside the card.")
}

func (o *TargetOptions) Validate() error {
	if o.Section == "" {
		return errors.New("--section is required")
	}
	return nil
}
