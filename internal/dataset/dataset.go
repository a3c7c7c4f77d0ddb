// Package dataset loads hierarchical option data and turns it into the tree
// a chain controller renders.
package dataset

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"chainsel/internal/tree"
)

// DefaultSeparator joins labels into a node's breadcrumb.
const DefaultSeparator = " / "

// ErrUnsupportedFormat is returned for data files with an unknown extension.
var ErrUnsupportedFormat = errors.New("dataset: unsupported data format")

// Item is one option and its children.
type Item struct {
	Value    string `toml:"value" json:"value" msgpack:"value"`
	Label    string `toml:"label" json:"label,omitempty" msgpack:"label,omitempty"`
	Children []Item `toml:"children" json:"children,omitempty" msgpack:"children,omitempty"`
}

// Data is the content of a data file.
type Data struct {
	Separator string `toml:"separator" json:"separator,omitempty" msgpack:"separator,omitempty"`
	Items     []Item `toml:"item" json:"items" msgpack:"items"`
}

// Count returns the number of items at every level.
func (d Data) Count() int {
	return countItems(d.Items)
}

func countItems(items []Item) int {
	n := len(items)
	for _, it := range items {
		n += countItems(it.Children)
	}
	return n
}

// Build is the default chain.TreeBuilder. It accepts Data, *Data or []Item.
// Labels default to the value and are NFC-normalized; each node's extended
// label is the breadcrumb of its ancestors' labels and its own.
func Build(data any) (*tree.Tree, error) {
	var d Data
	switch v := data.(type) {
	case Data:
		d = v
	case *Data:
		if v == nil {
			return nil, fmt.Errorf("dataset: nil data")
		}
		d = *v
	case []Item:
		d = Data{Items: v}
	default:
		return nil, fmt.Errorf("dataset: cannot build a tree from %T", data)
	}
	sep := d.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	capacity, err := safecast.Conv[uint32](d.Count())
	if err != nil {
		return nil, fmt.Errorf("dataset: too many items: %w", err)
	}
	b := tree.NewBuilder(capacity)
	addItems(b, b.Root(), "", sep, d.Items)
	return b.Build(), nil
}

func addItems(b *tree.Builder, parent tree.NodeID, crumb, sep string, items []Item) {
	for _, it := range items {
		label := it.Label
		if strings.TrimSpace(label) == "" {
			label = it.Value
		}
		label = norm.NFC.String(label)
		extended := label
		if crumb != "" {
			extended = crumb + sep + label
		}
		id := b.Add(parent, tree.Payload{
			Value:         it.Value,
			Label:         label,
			ExtendedLabel: extended,
		})
		addItems(b, id, extended, sep, it.Children)
	}
}
