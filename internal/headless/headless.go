// Package headless provides a chain.WidgetAdapter and chain.Container that
// render nothing. They record every call the controller makes and let
// callers drive the chain the way a user would.
package headless

import (
	"fmt"
	"strings"

	"chainsel/internal/chain"
	"chainsel/internal/elemid"
)

// RefreshCall records one Refresh made by the controller.
type RefreshCall struct {
	Hint    chain.LayoutHint
	Enabled bool
}

// Widget is a recording chain.WidgetAdapter.
type Widget struct {
	id       string
	opts     chain.Options
	handlers map[chain.EventKind]chain.Handler
	enabled  bool
	doc      *chain.Document
	hint     chain.LayoutHint

	Refreshes  []RefreshCall
	EnableLog  []bool
	Configured int
	// Reject, when set, is returned from Configure.
	Reject error
}

// NewWidget creates a headless widget.
func NewWidget(id string) *Widget {
	return &Widget{id: id, handlers: make(map[chain.EventKind]chain.Handler)}
}

func (w *Widget) ID() string { return w.id }

func (w *Widget) Configure(opts chain.Options) error {
	w.Configured++
	if w.Reject != nil {
		return w.Reject
	}
	w.opts = opts
	return nil
}

func (w *Widget) Bind(kind chain.EventKind, h chain.Handler) {
	w.handlers[kind] = h
}

func (w *Widget) SetEnabled(enabled bool) {
	w.enabled = enabled
	w.EnableLog = append(w.EnableLog, enabled)
}

func (w *Widget) Refresh(hint chain.LayoutHint, doc *chain.Document) {
	w.hint = hint
	w.doc = doc
	w.Refreshes = append(w.Refreshes, RefreshCall{Hint: hint, Enabled: w.enabled})
}

// Enabled reports the last enablement set by the controller.
func (w *Widget) Enabled() bool { return w.enabled }

// Hint returns the last layout hint.
func (w *Widget) Hint() chain.LayoutHint { return w.hint }

// Options returns the options received at bind time.
func (w *Widget) Options() chain.Options { return w.opts }

// Bound reports whether a handler is bound for kind.
func (w *Widget) Bound(kind chain.EventKind) bool {
	_, ok := w.handlers[kind]
	return ok
}

// ResetLog clears the recorded calls.
func (w *Widget) ResetLog() {
	w.Refreshes = nil
	w.EnableLog = nil
}

// Visible returns the labels of visible rows, groups prefixed with "# ".
func (w *Widget) Visible() []string {
	if w.doc == nil {
		return nil
	}
	var out []string
	for _, el := range w.doc.Elements() {
		if el.Hidden {
			continue
		}
		if el.Kind == chain.KindGroup {
			out = append(out, "# "+el.Label)
		} else {
			out = append(out, el.Label)
		}
	}
	return out
}

func (w *Widget) fire(ev chain.Event) error {
	h, ok := w.handlers[ev.Kind()]
	if !ok {
		return fmt.Errorf("widget %q: no handler bound for %s", w.id, ev.Kind())
	}
	return h(ev)
}

// Click toggles the option with the given value.
func (w *Widget) Click(value string, checked bool) error {
	return w.fire(chain.ItemToggled{WidgetID: w.id, Value: value, Checked: checked})
}

// ClickElement toggles one option by element id, as a widget that reports
// the id of the input the user clicked would.
func (w *Widget) ClickElement(elementID string, checked bool) error {
	if w.doc == nil {
		return fmt.Errorf("widget %q has not been rendered", w.id)
	}
	el, ok := w.doc.Get(elementID)
	if !ok || el.Kind != chain.KindOption {
		return fmt.Errorf("widget %q: no option %q", w.id, elementID)
	}
	w.doc.SetSelected(el.ID, checked)
	return w.fire(chain.ItemToggled{
		WidgetID:  w.id,
		ElementID: elemid.Decorate(el.ID),
		Value:     el.Value,
		Checked:   checked,
	})
}

// CheckAll selects every visible option and raises a check-all event.
func (w *Widget) CheckAll() error {
	if w.doc == nil {
		return fmt.Errorf("widget %q has not been rendered", w.id)
	}
	w.doc.SelectAll()
	return w.fire(chain.CheckAll{WidgetID: w.id, Selected: w.doc.Selected})
}

// UncheckAll deselects every option and raises a deselect-all event.
func (w *Widget) UncheckAll() error {
	if w.doc == nil {
		return fmt.Errorf("widget %q has not been rendered", w.id)
	}
	w.doc.DeselectAll()
	return w.fire(chain.UncheckAll{WidgetID: w.id, Selected: w.doc.Selected})
}

// ToggleGroup raises a group toggle for the visible members of group,
// reporting their ids with widget decoration as a real widget would.
func (w *Widget) ToggleGroup(group string, checked bool) error {
	if w.doc == nil {
		return fmt.Errorf("widget %q has not been rendered", w.id)
	}
	if !elemid.IsGroup(group) {
		return fmt.Errorf("widget %q: %q is not a group id", w.id, group)
	}
	members := w.doc.VisibleMembers(group)
	inputs := make([]string, 0, len(members))
	for _, id := range members {
		w.doc.SetSelected(id, checked)
		inputs = append(inputs, elemid.Decorate(id))
	}
	return w.fire(chain.GroupToggled{WidgetID: w.id, Checked: checked, Inputs: inputs})
}

// Dump renders the widget state as plain text.
func (w *Widget) Dump() string {
	var sb strings.Builder
	state := "disabled"
	if w.enabled {
		state = "enabled"
	}
	fmt.Fprintf(&sb, "[%s] %s rows=%d", w.id, state, w.hint.Rows)
	if w.hint.Fixed {
		fmt.Fprintf(&sb, " height=%d", w.hint.Height)
	}
	sb.WriteByte('\n')
	if w.doc == nil {
		return sb.String()
	}
	for _, el := range w.doc.Elements() {
		if el.Hidden {
			continue
		}
		switch el.Kind {
		case chain.KindGroup:
			fmt.Fprintf(&sb, "  %s\n", el.Label)
		default:
			mark := " "
			if el.Selected {
				mark = "x"
			}
			indent := "  "
			if el.Group != "" {
				indent = "    "
			}
			fmt.Fprintf(&sb, "%s[%s] %s\n", indent, mark, el.Label)
		}
	}
	return sb.String()
}

// Container is a recording chain.Container.
type Container struct {
	widgets []*Widget
	// Counts holds every checked count reported through StateChanged.
	Counts []int
}

// NewContainer creates one headless widget per id, in order.
func NewContainer(ids ...string) *Container {
	c := &Container{}
	for _, id := range ids {
		c.widgets = append(c.widgets, NewWidget(id))
	}
	return c
}

// Widgets implements chain.Container.
func (c *Container) Widgets() []chain.WidgetAdapter {
	out := make([]chain.WidgetAdapter, len(c.widgets))
	for i, w := range c.widgets {
		out[i] = w
	}
	return out
}

// StateChanged implements chain.Container.
func (c *Container) StateChanged(checkedCount int) {
	c.Counts = append(c.Counts, checkedCount)
}

// Widget returns the widget at depth.
func (c *Container) Widget(depth int) *Widget { return c.widgets[depth] }

// Lookup returns the widget with the given id.
func (c *Container) Lookup(id string) (*Widget, bool) {
	for _, w := range c.widgets {
		if w.id == id {
			return w, true
		}
	}
	return nil, false
}

// LastCount returns the last reported checked count, or -1.
func (c *Container) LastCount() int {
	if len(c.Counts) == 0 {
		return -1
	}
	return c.Counts[len(c.Counts)-1]
}

// ResetLogs clears the recorded calls of every widget.
func (c *Container) ResetLogs() {
	for _, w := range c.widgets {
		w.ResetLog()
	}
}
