package chain

// EventKind tags the widget events a controller subscribes to.
type EventKind uint8

const (
	EventItemToggled  EventKind = iota + 1 // one option checked or unchecked
	EventCheckAll                          // select-all on a widget
	EventUncheckAll                        // deselect-all on a widget
	EventGroupToggled                      // every option of one group at once
)

// EventKinds lists every kind in binding order.
var EventKinds = []EventKind{EventItemToggled, EventCheckAll, EventUncheckAll, EventGroupToggled}

// String returns the string representation of EventKind.
func (k EventKind) String() string {
	switch k {
	case EventItemToggled:
		return "item_toggled"
	case EventCheckAll:
		return "check_all"
	case EventUncheckAll:
		return "uncheck_all"
	case EventGroupToggled:
		return "group_toggled"
	default:
		return "unknown"
	}
}

// Event is one of ItemToggled, CheckAll, UncheckAll or GroupToggled.
type Event interface {
	Kind() EventKind
	Widget() string
	isEvent()
}

// SelectionQuery reports whether the widget currently shows an option as
// selected.
type SelectionQuery func(elementID string) bool

// Handler receives widget events.
type Handler func(Event) error

// ItemToggled is raised when the user checks or unchecks one option.
// ElementID, when set, names the option exactly; otherwise the option is
// found by Value, which must then be unique among the visible options.
type ItemToggled struct {
	WidgetID  string
	ElementID string
	Value     string
	Checked   bool
}

// CheckAll is raised after the widget selected all of its options.
type CheckAll struct {
	WidgetID string
	Selected SelectionQuery
}

// UncheckAll is raised after the widget deselected all of its options.
type UncheckAll struct {
	WidgetID string
	Selected SelectionQuery
}

// GroupToggled is raised when the user toggles a whole option group. Inputs
// holds the element ids of the group's options, decorated or not.
type GroupToggled struct {
	WidgetID string
	Checked  bool
	Inputs   []string
}

func (ItemToggled) Kind() EventKind  { return EventItemToggled }
func (CheckAll) Kind() EventKind     { return EventCheckAll }
func (UncheckAll) Kind() EventKind   { return EventUncheckAll }
func (GroupToggled) Kind() EventKind { return EventGroupToggled }

func (e ItemToggled) Widget() string  { return e.WidgetID }
func (e CheckAll) Widget() string     { return e.WidgetID }
func (e UncheckAll) Widget() string   { return e.WidgetID }
func (e GroupToggled) Widget() string { return e.WidgetID }

func (ItemToggled) isEvent()  {}
func (CheckAll) isEvent()     {}
func (UncheckAll) isEvent()   {}
func (GroupToggled) isEvent() {}
