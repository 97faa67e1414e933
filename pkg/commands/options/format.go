package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/cardboard/pkg/transfer"
)

// FormatOptions
type FormatOptions struct {
	Format string
	File   string
}

func AddFormatArgs(cmd *cobra.Command, o *FormatOptions) {
	cmd.Flags().StringVar(&o.Format, "format", string(transfer.JSON),
		`Payload format, "json" or "yaml".`)
	cmd.Flags().StringVarP(&o.File, "output", "o", "",
		"Write to this file instead of stdout.")
}

func (o *FormatOptions) Parse() (transfer.Format, error) {
	return transfer.ParseFormat(o.Format)
}
