package tree

import (
	"fmt"

	"fortio.org/safecast"
)

// Builder assembles a Tree. Nodes can only be added through a Builder, so a
// built Tree never changes shape.
type Builder struct {
	nodes []Node
	built bool
}

// NewBuilder creates a builder holding only the root, with an optional
// capacity hint for the number of nodes.
func NewBuilder(capacity uint32) *Builder {
	if capacity == 0 {
		capacity = 32
	}
	nodes := make([]Node, 2, capacity+2) // index 0 reserved for NoNodeID
	nodes[RootID] = Node{Path: Path{}, Depth: -1}
	return &Builder{nodes: nodes}
}

// Root returns the root id.
func (b *Builder) Root() NodeID { return RootID }

// Add appends a child under parent and returns its id. The new node's path
// is the parent's path extended by its position among the siblings.
func (b *Builder) Add(parent NodeID, payload Payload) NodeID {
	if b.built {
		panic("tree: Add after Build")
	}
	if !parent.IsValid() || int(parent) >= len(b.nodes) {
		panic(fmt.Errorf("tree: invalid parent id %d", parent))
	}
	value, err := safecast.Conv[uint32](len(b.nodes))
	if err != nil {
		panic(fmt.Errorf("tree arena overflow: %w", err))
	}
	id := NodeID(value)
	p := &b.nodes[parent]
	path := p.Path.Child(len(p.Children))
	p.Children = append(p.Children, id)
	payload.Checked = false
	b.nodes = append(b.nodes, Node{
		Path:    path,
		Depth:   len(path) - 1,
		Parent:  parent,
		Payload: payload,
	})
	return id
}

// Build finishes construction. The builder cannot be used afterwards.
func (b *Builder) Build() *Tree {
	b.built = true
	t := &Tree{nodes: b.nodes}
	b.nodes = nil
	return t
}
