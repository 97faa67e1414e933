package move

import (
	"context"

	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/runner/edit"
)

// Section moves a card within the layout of Session.Mode.
type Section struct {
	edit.Session
	From, To int
}

func (n *Section) Do(ctx context.Context) error {
	mode := n.Mode
	if mode == "" {
		mode = card.Normal
	}
	return n.Run(ctx, func(ctx context.Context) (string, error) {
		return "", n.Service.ReorderSection(ctx, mode, n.From, n.To)
	})
}

// Item moves an item within its bucket.
type Item struct {
	edit.Session
	Section  string
	Subtitle string
	Kind     card.Kind
	From, To int
}

func (n *Item) Do(ctx context.Context) error {
	return n.Run(ctx, func(ctx context.Context) (string, error) {
		return n.Section, n.Service.ReorderItem(ctx, n.Section, n.Subtitle, n.Kind, n.From, n.To)
	})
}
