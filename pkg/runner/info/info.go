package info

import (
	"context"
	"fmt"
	"os"

	"tableflip.dev/cardboard/pkg/app"
	"tableflip.dev/cardboard/pkg/printers"
	"tableflip.dev/cardboard/pkg/store"
)

type Info struct {
	Config  store.Config
	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Info) Do(ctx context.Context) error {
	if override := os.Getenv("CARDBOARD_CONFIG_PATH"); override != "" {
		fmt.Println("CARDBOARD_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Println("CARDBOARD_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	if n.Service == nil {
		return fmt.Errorf("Failed to create dashboard service.")
	}

	n.Printer.Info(n.Config, n.Service.Current(), len(n.Service.Backups(ctx)))
	return nil
}
