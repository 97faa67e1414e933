package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		in   string
		want []Asset
	}{
		"strings": {
			in:   `["icons/a.png", "b.svg"]`,
			want: []Asset{{Name: "a.png", Path: "icons/a.png"}, {Name: "b.svg", Path: "b.svg"}},
		},
		"records": {
			in:   `[{"name": "Mail", "path": "img/mail.png"}, {"path": "img/x.png"}, {"name": "y.png"}, {}]`,
			want: []Asset{{Name: "Mail", Path: "img/mail.png"}, {Name: "x.png", Path: "img/x.png"}, {Name: "y.png", Path: "y.png"}},
		},
		"files": {
			in:   `{"files": ["a.png"]}`,
			want: []Asset{{Name: "a.png", Path: "a.png"}},
		},
		"items": {
			in:   `{"items": [{"name": "n", "path": "p.png"}, 7]}`,
			want: []Asset{{Name: "n", Path: "p.png"}},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m, err := Parse([]byte(tc.in))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(tc.want, m.Assets); diff != "" {
				t.Fatalf("assets (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRejectsNonList(t *testing.T) {
	for _, in := range []string{`{"other": []}`, `"x"`, `{`} {
		if _, err := Parse([]byte(in)); err == nil {
			t.Errorf("expected error for %s", in)
		}
	}
}

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(file, []byte(`[{"name": "Mail", "path": "img/mail.png"}, "https://cdn/x.png"]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := []struct {
		icon string
		want string
		ok   bool
	}{
		{icon: "Mail", want: filepath.Join(dir, "img", "mail.png"), ok: true},
		{icon: "other/mail.png", want: filepath.Join(dir, "img", "mail.png"), ok: true},
		{icon: "x.png", want: "https://cdn/x.png", ok: true},
		{icon: "https://example.com/y.png", want: "https://example.com/y.png"},
		{icon: "🚀", want: "🚀"},
	}
	for _, tc := range tests {
		got, ok := m.Resolve(tc.icon)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Resolve(%q) = %q, %v; want %q, %v", tc.icon, got, ok, tc.want, tc.ok)
		}
	}
	if diff := cmp.Diff([]string{"Mail", "x.png"}, m.Names()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
}
