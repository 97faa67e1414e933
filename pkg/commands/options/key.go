package options

import (
	"github.com/spf13/cobra"
)

// KeyOptions
type KeyOptions struct {
	ShowKey bool
}

func AddShowKeyArgs(cmd *cobra.Command, o *KeyOptions) {
	cmd.Flags().BoolVarP(&o.ShowKey, "show-key", "k", false,
		"Show the id of each card and the key of each item.")
}
