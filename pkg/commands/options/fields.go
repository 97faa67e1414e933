package options

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// FieldOptions collect item fields given as repeated --set flags.
type FieldOptions struct {
	Set []string
}

func AddFieldArgs(cmd *cobra.Command, o *FieldOptions) {
	cmd.Flags().StringArrayVar(&o.Set, "set", nil,
		`Item field as key=value, repeatable. Values that parse as JSON keep their type. `+
			`Dotted keys build nested objects, example: --set schedule.type=weekday --set schedule.weekday=1.`)
}

// Fields builds the field map.
func (o *FieldOptions) Fields() (map[string]any, error) {
	out := map[string]any{}
	for _, kv := range o.Set {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q, want key=value", kv)
		}
		if err := setPath(out, strings.Split(k, "."), parseValue(v)); err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", kv, err)
		}
	}
	return out, nil
}

func parseValue(v string) any {
	var parsed any
	if err := json.Unmarshal([]byte(v), &parsed); err == nil {
		return parsed
	}
	return v
}

func setPath(m map[string]any, path []string, v any) error {
	if len(path) == 1 {
		m[path[0]] = v
		return nil
	}
	next, ok := m[path[0]]
	if !ok {
		child := map[string]any{}
		m[path[0]] = child
		return setPath(child, path[1:], v)
	}
	child, ok := next.(map[string]any)
	if !ok {
		return fmt.Errorf("%s is not an object", path[0])
	}
	return setPath(child, path[1:], v)
}
