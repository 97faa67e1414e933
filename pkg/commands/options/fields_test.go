package options

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFields(t *testing.T) {
	tests := []struct {
		name    string
		set     []string
		want    map[string]any
		wantErr bool
	}{{
		name: "strings",
		set:  []string{"text=Inbox", "url=https://example.com/?a=b"},
		want: map[string]any{"text": "Inbox", "url": "https://example.com/?a=b"},
	}, {
		name: "typed",
		set:  []string{"interval=100", "isDivider=true", "title=\"42\""},
		want: map[string]any{"interval": float64(100), "isDivider": true, "title": "42"},
	}, {
		name: "nested",
		set:  []string{"schedule.type=weekday", "schedule.weekday=1", "type=days"},
		want: map[string]any{
			"type":     "days",
			"schedule": map[string]any{"type": "weekday", "weekday": float64(1)},
		},
	}, {
		name:    "missing equals",
		set:     []string{"text"},
		wantErr: true,
	}, {
		name:    "scalar then nested",
		set:     []string{"schedule=x", "schedule.type=once"},
		wantErr: true,
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &FieldOptions{Set: tt.set}
			got, err := o.Fields()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Fields() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Fields() (-want +got):\n%s", diff)
			}
		})
	}
}
