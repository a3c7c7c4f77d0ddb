package chain

import (
	"strconv"

	"github.com/oklog/ulid/v2"

	"chainsel/internal/elemid"
	"chainsel/internal/trace"
	"chainsel/internal/tree"
)

const (
	// DefaultScrollThreshold is the largest row count rendered at natural height.
	DefaultScrollThreshold = 14
	// DefaultFixedHeight is the height used once a widget scrolls.
	DefaultFixedHeight = 400
)

// Option configures a Controller.
type Option func(*Controller)

// WithTracer sets the tracer for controller events.
func WithTracer(t trace.Tracer) Option {
	return func(c *Controller) { c.tracer = t }
}

// WithScrollThreshold overrides the row count above which widgets get a
// fixed, scrollable height.
func WithScrollThreshold(rows int) Option {
	return func(c *Controller) {
		if rows > 0 {
			c.scrollThreshold = rows
		}
	}
}

// WithFixedHeight overrides the height handed to scrolling widgets.
func WithFixedHeight(height int) Option {
	return func(c *Controller) {
		if height > 0 {
			c.fixedHeight = height
		}
	}
}

// Controller synchronizes one option tree with an ordered chain of widgets.
type Controller struct {
	id        string
	container Container
	widgets   []WidgetAdapter
	depthOf   map[string]int
	docs      []*Document
	opts      Options
	data      any
	build     TreeBuilder

	tree        *tree.Tree
	initialized bool

	tracer          trace.Tracer
	span            uint64 // span of the event being handled
	scrollThreshold int
	fixedHeight     int
}

// New binds a controller to the widgets of container. Nothing is rendered
// until Initialize is called.
func New(container Container, opts Options, data any, build TreeBuilder, options ...Option) (*Controller, error) {
	if container == nil {
		return nil, configErrorf("nil container")
	}
	if build == nil {
		return nil, configErrorf("nil tree builder")
	}
	widgets := container.Widgets()
	if len(widgets) == 0 {
		return nil, configErrorf("container has no widgets")
	}
	depthOf := make(map[string]int, len(widgets))
	for depth, w := range widgets {
		if w == nil {
			return nil, configErrorf("widget %d is nil", depth)
		}
		id := w.ID()
		if id == "" {
			return nil, configErrorf("widget %d has an empty id", depth)
		}
		if prev, dup := depthOf[id]; dup {
			return nil, configErrorf("widget id %q used at depth %d and %d", id, prev, depth)
		}
		depthOf[id] = depth
	}

	c := &Controller{
		id:              ulid.Make().String(),
		container:       container,
		widgets:         widgets,
		depthOf:         depthOf,
		opts:            opts,
		data:            data,
		build:           build,
		tracer:          trace.Nop,
		scrollThreshold: DefaultScrollThreshold,
		fixedHeight:     DefaultFixedHeight,
	}
	for _, opt := range options {
		opt(c)
	}
	c.tracer = trace.ForChain(c.tracer, c.id)
	return c, nil
}

// ID returns the controller's instance id.
func (c *Controller) ID() string { return c.id }

// Tree returns the option tree, or nil before Initialize.
func (c *Controller) Tree() *tree.Tree { return c.tree }

// WidgetCount reports the number of widgets in the chain.
func (c *Controller) WidgetCount() int { return len(c.widgets) }

// Document returns the document of a widget.
func (c *Controller) Document(widgetID string) (*Document, bool) {
	depth, ok := c.depthOf[widgetID]
	if !ok || c.docs == nil {
		return nil, false
	}
	return c.docs[depth], true
}

// IsChained reports whether widgetID belongs to this chain.
func (c *Controller) IsChained(widgetID string) bool {
	_, ok := c.depthOf[widgetID]
	return ok
}

// Initialize builds the tree, creates every group and option hidden, shows
// the top-level options and binds the widgets. Only the first widget starts
// enabled.
func (c *Controller) Initialize() error {
	if c.initialized {
		return configErrorf("controller already initialized")
	}
	span := trace.Begin(c.tracer, trace.ScopeController, "initialize", 0)
	c.span = span.ID()
	defer func() { c.span = 0 }()

	t, err := c.build(c.data)
	if err != nil {
		span.End("build failed")
		return configErrorf("tree builder: %v", err)
	}
	if t == nil || t.Get(t.Root()) == nil {
		span.End("no tree")
		return configErrorf("tree builder returned no tree")
	}
	c.tree = t
	for id := range t.Walk(t.Root()) {
		t.SetChecked(id, false)
	}

	c.docs = make([]*Document, len(c.widgets))
	for depth, w := range c.widgets {
		c.docs[depth] = NewDocument(w.ID())
	}
	for id := range t.Walk(t.Root()) {
		if err := c.createChildGroup(id); err != nil {
			span.End("create failed")
			return configErrorf("%v", err)
		}
	}
	c.revealChildGroup(t.Root())

	for depth, w := range c.widgets {
		if err := w.Configure(c.opts); err != nil {
			span.End("configure failed")
			return configErrorf("widget %q rejected options: %v", w.ID(), err)
		}
		w.SetEnabled(depth == 0)
		for _, kind := range EventKinds {
			w.Bind(kind, c.Handle)
		}
		doc := c.docs[depth]
		w.Refresh(c.layout(doc.VisibleRows()), doc)
	}
	c.initialized = true

	span.WithExtra("nodes", strconv.Itoa(t.Len())).WithExtra("widgets", strconv.Itoa(len(c.widgets))).End("")
	return nil
}

// Check marks the option checked, shows it along with its group, and
// reveals its children without refreshing any widget. Callers checking
// many options refresh once afterwards. It returns the number of child
// options revealed.
func (c *Controller) Check(elementID string) (int, error) {
	if !c.initialized {
		return 0, configErrorf("controller not initialized")
	}
	id, err := c.resolve(elementID)
	if err != nil {
		return 0, err
	}
	n := c.tree.Get(id)
	c.tree.SetChecked(id, true)
	if n.Depth < len(c.docs) {
		doc := c.docs[n.Depth]
		eid := elemid.FromPath(n.Path)
		doc.Show(eid)
		doc.SetSelected(eid, true)
		if el, ok := doc.Get(eid); ok && el.Group != "" {
			doc.Show(el.Group)
		}
	}
	return c.revealChildGroup(id), nil
}

// Refresh re-renders one widget from its document.
func (c *Controller) Refresh(widgetID string) error {
	if !c.initialized {
		return configErrorf("controller not initialized")
	}
	depth, ok := c.depthOf[widgetID]
	if !ok {
		return configErrorf("widget %q is not part of this chain", widgetID)
	}
	c.refreshDepth(depth)
	return nil
}

// RefreshAll refreshes every widget in depth order.
func (c *Controller) RefreshAll() {
	if !c.initialized {
		return
	}
	c.refreshFrom(0)
}

// CountChecked counts checked nodes across the whole tree.
func (c *Controller) CountChecked() int {
	if c.tree == nil {
		return 0
	}
	return c.tree.CountChecked()
}

// CheckedValues returns the values of checked nodes grouped by widget depth.
func (c *Controller) CheckedValues() [][]string {
	out := make([][]string, len(c.widgets))
	if c.tree == nil {
		return out
	}
	for id := range c.tree.Descendants(c.tree.Root()) {
		n := c.tree.Get(id)
		if n.Payload.Checked && n.Depth < len(out) {
			out[n.Depth] = append(out[n.Depth], n.Payload.Value)
		}
	}
	return out
}

func (c *Controller) resolve(elementID string) (tree.NodeID, error) {
	path, err := elemid.ToPath(elementID)
	if err != nil {
		return tree.NoNodeID, consistencyErrorf("%v", err)
	}
	id, err := c.tree.Lookup(path)
	if err != nil {
		return tree.NoNodeID, consistencyErrorf("element %q: %v", elementID, err)
	}
	return id, nil
}
