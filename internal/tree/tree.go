package tree

import (
	"errors"
	"fmt"
	"iter"
)

// NodeID indexes a node in the tree arena.
type NodeID uint32

const (
	// NoNodeID is the reserved sentinel; it never names a node.
	NoNodeID NodeID = 0
	// RootID is the id of the root node in every tree.
	RootID NodeID = 1
)

// IsValid reports whether id is not the sentinel.
func (id NodeID) IsValid() bool { return id != NoNodeID }

// ErrNotFound is returned when a path does not resolve to a node.
var ErrNotFound = errors.New("tree: node not found")

// Payload is the data carried by each node.
type Payload struct {
	Value         string
	Label         string
	ExtendedLabel string // breadcrumb, e.g. "Europe / France"
	Checked       bool
}

// Node is a single arena entry.
type Node struct {
	Path     Path
	Depth    int
	Parent   NodeID
	Children []NodeID
	Payload  Payload
}

// IsRoot reports whether the node is the tree root.
func (n *Node) IsRoot() bool { return n.Parent == NoNodeID }

// Tree is an ordered multi-child hierarchy stored in a slice arena.
type Tree struct {
	nodes []Node
}

// Root returns the root node id.
func (t *Tree) Root() NodeID { return RootID }

// Len reports the number of nodes below the root.
func (t *Tree) Len() int {
	if t == nil || len(t.nodes) <= 1 {
		return 0
	}
	return len(t.nodes) - 2
}

// Get returns the node pointer or nil if id is invalid.
func (t *Tree) Get(id NodeID) *Node {
	if t == nil || !id.IsValid() || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// Child returns the idx-th child of id.
func (t *Tree) Child(id NodeID, idx int) (NodeID, bool) {
	n := t.Get(id)
	if n == nil || idx < 0 || idx >= len(n.Children) {
		return NoNodeID, false
	}
	return n.Children[idx], true
}

// Lookup resolves a path by walking Children from the root.
func (t *Tree) Lookup(path Path) (NodeID, error) {
	if t.Get(RootID) == nil {
		return NoNodeID, fmt.Errorf("%w: empty tree", ErrNotFound)
	}
	id := RootID
	for depth, idx := range path {
		next, ok := t.Child(id, idx)
		if !ok {
			return NoNodeID, fmt.Errorf("%w: %q (segment %d out of range)", ErrNotFound, path.String(), depth)
		}
		id = next
	}
	return id, nil
}

// SetChecked updates the checked flag of a node. It is the only mutation a
// built tree allows.
func (t *Tree) SetChecked(id NodeID, checked bool) {
	if n := t.Get(id); n != nil {
		n.Payload.Checked = checked
	}
}

// Checked reports the checked flag of a node.
func (t *Tree) Checked(id NodeID) bool {
	n := t.Get(id)
	return n != nil && n.Payload.Checked
}

// CountChecked counts checked nodes with a full traversal.
func (t *Tree) CountChecked() int {
	count := 0
	for id := range t.Descendants(RootID) {
		if t.nodes[id].Payload.Checked {
			count++
		}
	}
	return count
}

// MaxDepth returns the deepest node depth, or -1 for an empty tree.
func (t *Tree) MaxDepth() int {
	maxDepth := -1
	for id := range t.Descendants(RootID) {
		if d := t.nodes[id].Depth; d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}

// Walk yields id and every node below it, depth-first pre-order.
// The sequence is finite and may be ranged over any number of times.
func (t *Tree) Walk(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if t.Get(id) == nil {
			return
		}
		stack := []NodeID{id}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(cur) {
				return
			}
			children := t.nodes[cur].Children
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
}

// Descendants yields the strict descendants of id, depth-first pre-order.
func (t *Tree) Descendants(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for cur := range t.Walk(id) {
			if cur == id {
				continue
			}
			if !yield(cur) {
				return
			}
		}
	}
}
