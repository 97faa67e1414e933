package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
)

// OutputOptions is bound to the persistent --json flag.
type OutputOptions struct {
	JSON bool
}

// HandleError prints err as a JSON object when JSON output is on and
// swallows it; otherwise err is returned as is.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}

// Print writes v as indented JSON.
func (o *OutputOptions) Print(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}
