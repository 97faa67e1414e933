package library

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/cardboard/pkg/app"
	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/media"
)

// Media lists the media library and checks the icons the dashboard uses
// against it.
type Media struct {
	Service  *app.Service
	Manifest string
}

func (n *Media) Do(ctx context.Context) error {
	if n.Manifest == "" {
		return errors.New("no media manifest configured")
	}
	m, err := media.Load(n.Manifest)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(color.Output, "%d assets in %s\n", len(m.Assets), n.Manifest)
	for _, name := range m.Names() {
		_, _ = fmt.Fprintf(color.Output, "  %s\n", name)
	}
	if n.Service == nil {
		return nil
	}

	missing := Missing(n.Service.Current(), m)
	if len(missing) == 0 {
		return nil
	}
	_, _ = fmt.Fprintln(color.Output)
	_, _ = color.New(color.FgYellow, color.Bold).Fprintln(color.Output, "Icons not in the library")
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, u := range missing {
		tbl.AddRow(u.Section, u.Key, u.Icon)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	return nil
}

// Use is one icon tile referring to a file.
type Use struct {
	Section string
	Key     string
	Icon    string
}

// Missing lists icon tiles whose icon looks like a file name the manifest
// does not know. Emoji, text icons and URLs are not checked.
func Missing(d *card.Document, m media.Manifest) []Use {
	var out []Use
	for _, id := range d.SectionIDs() {
		c := d.ContentOf(id)
		for _, sub := range c.Subtitles() {
			for _, i := range c.Bucket(sub).Icons {
				if i.IsDivider || path.Ext(i.Icon) == "" || strings.Contains(i.Icon, "://") {
					continue
				}
				if _, ok := m.Resolve(i.Icon); !ok {
					out = append(out, Use{Section: id, Key: i.Key, Icon: i.Icon})
				}
			}
		}
	}
	return out
}
