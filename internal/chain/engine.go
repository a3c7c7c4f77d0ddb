package chain

import (
	"strconv"

	"chainsel/internal/elemid"
	"chainsel/internal/trace"
	"chainsel/internal/tree"
)

// childWidget returns the depth of the widget holding id's children, or -1
// when the children fall outside the chain or there are none.
func (c *Controller) childWidget(n *tree.Node) int {
	target := n.Depth + 1
	if target >= len(c.widgets) || len(n.Children) == 0 {
		return -1
	}
	return target
}

// childGroup returns the group id holding n's children. The root's children
// are top-level options and have no group.
func childGroup(n *tree.Node) string {
	if n.IsRoot() {
		return ""
	}
	return elemid.GroupFor(n.Path)
}

// createChildGroup adds the hidden group and options for id's children.
func (c *Controller) createChildGroup(id tree.NodeID) error {
	n := c.tree.Get(id)
	target := c.childWidget(n)
	if target < 0 {
		return nil
	}
	doc := c.docs[target]
	group := childGroup(n)
	if group != "" {
		if err := doc.AppendGroup(group, n.Payload.ExtendedLabel, true); err != nil {
			return err
		}
	}
	for _, child := range n.Children {
		cn := c.tree.Get(child)
		if err := doc.AppendOption(group, elemid.FromPath(cn.Path), cn.Payload.Value, cn.Payload.Label, true); err != nil {
			return err
		}
	}
	return nil
}

// revealChildGroup un-hides the group and options of id's children and
// returns how many options it covered. Leaves and nodes in the last widget
// yield 0.
func (c *Controller) revealChildGroup(id tree.NodeID) int {
	n := c.tree.Get(id)
	target := c.childWidget(n)
	if target < 0 {
		return 0
	}
	doc := c.docs[target]
	if group := childGroup(n); group != "" {
		doc.Show(group)
	}
	for _, child := range n.Children {
		doc.Show(elemid.FromPath(c.tree.Get(child).Path))
	}
	trace.Point(c.tracer, trace.ScopeNode, "reveal", n.Path.String(), c.span,
		map[string]string{"widget": c.widgets[target].ID(), "options": strconv.Itoa(len(n.Children))})
	return len(n.Children)
}

// hideDescendants unchecks every strict descendant of id and hides its
// option. The option of id itself is left alone.
func (c *Controller) hideDescendants(id tree.NodeID) {
	hidden := 0
	for d := range c.tree.Descendants(id) {
		c.tree.SetChecked(d, false)
		dn := c.tree.Get(d)
		if dn.Depth < len(c.docs) && c.docs[dn.Depth].Hide(elemid.FromPath(dn.Path)) {
			hidden++
		}
	}
	if hidden > 0 {
		trace.Point(c.tracer, trace.ScopeNode, "hide", c.tree.Get(id).Path.String(), c.span,
			map[string]string{"options": strconv.Itoa(hidden)})
	}
}

func (c *Controller) layout(rows int) LayoutHint {
	if rows > c.scrollThreshold {
		return LayoutHint{Rows: rows, Fixed: true, Height: c.fixedHeight}
	}
	return LayoutHint{Rows: rows}
}

// refreshDepth hides empty groups, resizes, enables or disables and
// re-renders one widget.
func (c *Controller) refreshDepth(depth int) {
	doc := c.docs[depth]
	w := c.widgets[depth]
	doc.HideEmptyGroups()
	hint := c.layout(doc.VisibleRows())
	w.SetEnabled(hint.Rows > 0)
	w.Refresh(hint, doc)
	trace.Point(c.tracer, trace.ScopeWidget, "refresh", w.ID(), c.span, map[string]string{
		"rows":    strconv.Itoa(hint.Rows),
		"fixed":   strconv.FormatBool(hint.Fixed),
		"enabled": strconv.FormatBool(hint.Rows > 0),
	})
}

// refreshFrom refreshes widgets depth..last.
func (c *Controller) refreshFrom(depth int) {
	if depth < 0 {
		depth = 0
	}
	for d := depth; d < len(c.widgets); d++ {
		c.refreshDepth(d)
	}
}
