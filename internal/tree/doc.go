// Package tree stores the hierarchical option data behind a chain of
// selection widgets.
//
// Nodes live in a slice arena and are referenced by NodeID. Index 0 is a
// reserved sentinel (NoNodeID) and the root always occupies RootID. The shape
// of a Tree is fixed once Builder.Build returns; only the per-node Checked
// flag can change afterwards.
//
// # Depth
//
// The root has depth -1 and is never rendered. A node whose Path has length k
// has depth k-1, so the root's children are depth 0 and render in the first
// widget of a chain.
//
// # Traversal
//
// Walk and Descendants return lazy depth-first pre-order sequences:
//
//	for id := range t.Descendants(n) {
//		t.SetChecked(id, false)
//	}
package tree
