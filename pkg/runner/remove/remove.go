package remove

import (
	"context"

	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/runner/edit"
)

// Section deletes a card together with its content and metadata.
type Section struct {
	edit.Session
	ID string
}

func (n *Section) Do(ctx context.Context) error {
	return n.Run(ctx, func(ctx context.Context) (string, error) {
		return "", n.Service.DeleteSection(ctx, n.ID)
	})
}

// Item deletes one item by key.
type Item struct {
	edit.Session
	Section  string
	Subtitle string
	Kind     card.Kind
	Key      string
}

func (n *Item) Do(ctx context.Context) error {
	return n.Run(ctx, func(ctx context.Context) (string, error) {
		return n.Section, n.Service.DeleteItem(ctx, n.Section, n.Subtitle, n.Kind, n.Key)
	})
}
