package library

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/media"
)

func TestMissing(t *testing.T) {
	d := card.New()
	id := d.AddSection("Tools")
	for _, icon := range []string{"mail.png", "🛒", "https://cdn.example.com/x.png", "gone.svg"} {
		if _, err := d.AddItem(id, "", card.KindIcons, map[string]any{"icon": icon, "title": icon}); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}
	m := media.Manifest{Assets: []media.Asset{{Name: "mail.png", Path: "icons/mail.png"}}}

	got := Missing(d, m)
	want := []Use{{Section: id, Key: "icon_4", Icon: "gone.svg"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Missing() (-want +got):\n%s", diff)
	}
}
