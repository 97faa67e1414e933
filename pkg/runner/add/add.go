package add

import (
	"context"

	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/runner/edit"
)

// Section adds an empty card.
type Section struct {
	edit.Session
	Title string

	// ID is set once the card is added.
	ID string
}

func (n *Section) Do(ctx context.Context) error {
	return n.Run(ctx, func(ctx context.Context) (string, error) {
		id, err := n.Service.AddSection(ctx, n.Title)
		n.ID = id
		return id, err
	})
}

// Item adds an item built from Fields to a card's bucket. A new subtitle
// is created on first use.
type Item struct {
	edit.Session
	Section  string
	Subtitle string
	Kind     card.Kind
	Fields   map[string]any

	// Key is set once the item is added.
	Key string
}

func (n *Item) Do(ctx context.Context) error {
	return n.Run(ctx, func(ctx context.Context) (string, error) {
		key, err := n.Service.AddItem(ctx, n.Section, n.Subtitle, n.Kind, n.Fields)
		n.Key = key
		return n.Section, err
	})
}
