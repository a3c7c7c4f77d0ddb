package chain

import (
	"fmt"
	"iter"
)

// ElementKind distinguishes options from option groups.
type ElementKind uint8

const (
	KindOption ElementKind = iota + 1
	KindGroup
)

// String returns the string representation of ElementKind.
func (k ElementKind) String() string {
	switch k {
	case KindOption:
		return "option"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Element is one row a widget may render.
type Element struct {
	ID       string
	Kind     ElementKind
	Group    string // owning group id; empty for top-level options and groups
	Value    string
	Label    string
	Hidden   bool
	Selected bool
}

// Document is the ordered element list behind one widget. The controller
// creates elements and toggles their visibility; widgets read it to render
// and record the user's selection with SetSelected.
type Document struct {
	widgetID string
	elems    []Element
	index    map[string]int
}

// NewDocument creates an empty document for a widget.
func NewDocument(widgetID string) *Document {
	return &Document{
		widgetID: widgetID,
		index:    make(map[string]int),
	}
}

// WidgetID returns the id of the widget this document belongs to.
func (d *Document) WidgetID() string { return d.widgetID }

// Len reports the number of elements, hidden ones included.
func (d *Document) Len() int { return len(d.elems) }

// Elements returns a copy of all elements in render order.
func (d *Document) Elements() []Element {
	out := make([]Element, len(d.elems))
	copy(out, d.elems)
	return out
}

// Get returns the element with the given id.
func (d *Document) Get(id string) (Element, bool) {
	i, ok := d.index[id]
	if !ok {
		return Element{}, false
	}
	return d.elems[i], true
}

// AppendGroup adds an option group at the end of the document.
func (d *Document) AppendGroup(id, label string, hidden bool) error {
	if _, dup := d.index[id]; dup {
		return fmt.Errorf("duplicate element id %q in widget %q", id, d.widgetID)
	}
	d.index[id] = len(d.elems)
	d.elems = append(d.elems, Element{ID: id, Kind: KindGroup, Label: label, Hidden: hidden})
	return nil
}

// AppendOption adds an option as the last member of group, or at the end of
// the document when group is empty.
func (d *Document) AppendOption(group, id, value, label string, hidden bool) error {
	if _, dup := d.index[id]; dup {
		return fmt.Errorf("duplicate element id %q in widget %q", id, d.widgetID)
	}
	el := Element{ID: id, Kind: KindOption, Group: group, Value: value, Label: label, Hidden: hidden}
	pos := len(d.elems)
	if group != "" {
		gi, ok := d.index[group]
		if !ok || d.elems[gi].Kind != KindGroup {
			return fmt.Errorf("unknown group %q in widget %q", group, d.widgetID)
		}
		pos = gi + 1
		for pos < len(d.elems) && d.elems[pos].Group == group {
			pos++
		}
	}
	if pos == len(d.elems) {
		d.index[id] = pos
		d.elems = append(d.elems, el)
		return nil
	}
	d.elems = append(d.elems, Element{})
	copy(d.elems[pos+1:], d.elems[pos:])
	d.elems[pos] = el
	for i := pos; i < len(d.elems); i++ {
		d.index[d.elems[i].ID] = i
	}
	return nil
}

// Show clears the hidden marker. It reports whether the element exists.
func (d *Document) Show(id string) bool {
	i, ok := d.index[id]
	if ok {
		d.elems[i].Hidden = false
	}
	return ok
}

// Hide marks an element hidden and clears its selection.
func (d *Document) Hide(id string) bool {
	i, ok := d.index[id]
	if ok {
		d.elems[i].Hidden = true
		d.elems[i].Selected = false
	}
	return ok
}

// SetSelected records the widget's selection state for an option.
func (d *Document) SetSelected(id string, selected bool) bool {
	i, ok := d.index[id]
	if ok && d.elems[i].Kind == KindOption {
		d.elems[i].Selected = selected
		return true
	}
	return false
}

// Selected reports whether an option is selected.
func (d *Document) Selected(id string) bool {
	i, ok := d.index[id]
	return ok && d.elems[i].Selected
}

// SelectAll selects every visible option, as a widget's "check all" does.
func (d *Document) SelectAll() {
	for i := range d.elems {
		if d.elems[i].Kind == KindOption && !d.elems[i].Hidden {
			d.elems[i].Selected = true
		}
	}
}

// DeselectAll clears the selection of every option.
func (d *Document) DeselectAll() {
	for i := range d.elems {
		d.elems[i].Selected = false
	}
}

// Options yields every option, hidden ones included, in render order.
func (d *Document) Options() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for _, el := range d.elems {
			if el.Kind == KindOption && !yield(el) {
				return
			}
		}
	}
}

// OptionByValue finds an option by value, preferring visible options.
func (d *Document) OptionByValue(value string) (Element, bool) {
	var fallback *Element
	for i := range d.elems {
		el := &d.elems[i]
		if el.Kind != KindOption || el.Value != value {
			continue
		}
		if !el.Hidden {
			return *el, true
		}
		if fallback == nil {
			fallback = el
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Element{}, false
}

// VisibleWithValue counts the visible options carrying value.
func (d *Document) VisibleWithValue(value string) int {
	n := 0
	for _, el := range d.elems {
		if el.Kind == KindOption && !el.Hidden && el.Value == value {
			n++
		}
	}
	return n
}

// VisibleMembers returns the ids of the visible options of group.
func (d *Document) VisibleMembers(group string) []string {
	var out []string
	for _, el := range d.elems {
		if el.Kind == KindOption && el.Group == group && !el.Hidden {
			out = append(out, el.ID)
		}
	}
	return out
}

// HideEmptyGroups hides every group without a visible option and returns
// how many groups it hid.
func (d *Document) HideEmptyGroups() int {
	visible := make(map[string]bool)
	for _, el := range d.elems {
		if el.Kind == KindOption && !el.Hidden && el.Group != "" {
			visible[el.Group] = true
		}
	}
	hidden := 0
	for i := range d.elems {
		el := &d.elems[i]
		if el.Kind == KindGroup && !el.Hidden && !visible[el.ID] {
			el.Hidden = true
			hidden++
		}
	}
	return hidden
}

// VisibleRows counts visible options and groups.
func (d *Document) VisibleRows() int {
	rows := 0
	for _, el := range d.elems {
		if !el.Hidden {
			rows++
		}
	}
	return rows
}
