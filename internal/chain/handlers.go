package chain

import (
	"strconv"

	"chainsel/internal/elemid"
	"chainsel/internal/trace"
	"chainsel/internal/tree"
)

// Handle applies one widget event to the tree and the affected widgets, then
// notifies the container of the new checked count. A failed event leaves
// the container un-notified.
func (c *Controller) Handle(ev Event) error {
	if !c.initialized {
		return configErrorf("controller not initialized")
	}
	if ev == nil {
		return consistencyErrorf("nil event")
	}
	span := trace.Begin(c.tracer, trace.ScopeEvent, ev.Kind().String(), 0)
	c.span = span.ID()
	defer func() { c.span = 0 }()

	depth, ok := c.depthOf[ev.Widget()]
	if !ok {
		span.End("unknown widget")
		return consistencyErrorf("event from unbound widget %q", ev.Widget())
	}

	var err error
	switch e := ev.(type) {
	case ItemToggled:
		err = c.onItemToggled(depth, e)
	case CheckAll:
		err = c.checkOptions(c.matching(depth, e.Selected, true))
	case UncheckAll:
		err = c.uncheckOptions(c.matching(depth, e.Selected, false))
	case GroupToggled:
		if e.Checked {
			err = c.checkOptions(e.Inputs)
		} else {
			err = c.uncheckOptions(e.Inputs)
		}
	default:
		err = consistencyErrorf("unsupported event %T", ev)
	}
	if err != nil {
		span.End(err.Error())
		return err
	}

	count := c.tree.CountChecked()
	span.WithExtra("widget", ev.Widget()).WithExtra("checked", strconv.Itoa(count)).End("")
	c.container.StateChanged(count)
	return nil
}

// toggledOption finds the option an ItemToggled refers to.
func (c *Controller) toggledOption(doc *Document, ev ItemToggled) (Element, error) {
	if ev.ElementID != "" {
		path, err := elemid.ToPath(ev.ElementID)
		if err != nil {
			return Element{}, consistencyErrorf("%v", err)
		}
		el, ok := doc.Get(elemid.FromPath(path))
		if !ok || el.Kind != KindOption {
			return Element{}, consistencyErrorf("widget %q has no option %q", ev.WidgetID, ev.ElementID)
		}
		return el, nil
	}
	if n := doc.VisibleWithValue(ev.Value); n > 1 {
		return Element{}, consistencyErrorf("widget %q shows %d options with value %q", ev.WidgetID, n, ev.Value)
	}
	el, ok := doc.OptionByValue(ev.Value)
	if !ok {
		return Element{}, consistencyErrorf("widget %q has no option with value %q", ev.WidgetID, ev.Value)
	}
	return el, nil
}

func (c *Controller) onItemToggled(depth int, ev ItemToggled) error {
	doc := c.docs[depth]
	el, err := c.toggledOption(doc, ev)
	if err != nil {
		return err
	}
	id, err := c.resolve(el.ID)
	if err != nil {
		return err
	}
	doc.SetSelected(el.ID, ev.Checked)
	n := c.tree.Get(id)

	if ev.Checked {
		c.tree.SetChecked(id, true)
		if c.revealChildGroup(id) > 0 {
			c.refreshDepth(n.Depth + 1)
		}
		return nil
	}

	c.tree.SetChecked(id, false)
	c.hideDescendants(id)
	c.refreshFrom(n.Depth)
	return nil
}

// matching lists the options of a widget whose selection state, according
// to query, equals selected. A nil query falls back to the document.
func (c *Controller) matching(depth int, query SelectionQuery, selected bool) []string {
	doc := c.docs[depth]
	if query == nil {
		query = doc.Selected
	}
	var ids []string
	for el := range doc.Options() {
		if query(el.ID) == selected {
			ids = append(ids, el.ID)
		}
	}
	return ids
}

// checkOptions checks every listed option that is not checked yet and
// refreshes the next widget once if any child options were revealed.
func (c *Controller) checkOptions(ids []string) error {
	added, last := 0, -1
	for _, eid := range ids {
		id, n, err := c.lookup(eid)
		if err != nil {
			return err
		}
		c.markSelected(n, true)
		if !n.Payload.Checked {
			added += c.revealChildGroup(id)
			c.tree.SetChecked(id, true)
		}
		last = n.Depth
	}
	if added > 0 && last+1 < len(c.widgets) {
		c.refreshDepth(last + 1)
	}
	return nil
}

// uncheckOptions unchecks every listed option that is checked, hides its
// descendants, and refreshes from the depth of the last option processed.
func (c *Controller) uncheckOptions(ids []string) error {
	last := -1
	for _, eid := range ids {
		id, n, err := c.lookup(eid)
		if err != nil {
			return err
		}
		c.markSelected(n, false)
		if n.Payload.Checked {
			c.hideDescendants(id)
			c.tree.SetChecked(id, false)
		}
		last = n.Depth
	}
	if last >= 0 {
		c.refreshFrom(last)
	}
	return nil
}

func (c *Controller) lookup(elementID string) (tree.NodeID, *tree.Node, error) {
	id, err := c.resolve(elementID)
	if err != nil {
		return tree.NoNodeID, nil, err
	}
	return id, c.tree.Get(id), nil
}

func (c *Controller) markSelected(n *tree.Node, selected bool) {
	if n.Depth < len(c.docs) {
		c.docs[n.Depth].SetSelected(elemid.FromPath(n.Path), selected)
	}
}
