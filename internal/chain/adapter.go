package chain

import "chainsel/internal/tree"

// Options is the widget configuration handed verbatim to every widget when
// it is bound. Its keys are meaningful only to the widget implementation.
type Options map[string]any

// LayoutHint tells a widget how to size itself on refresh.
type LayoutHint struct {
	Rows   int  // visible rows (options + groups)
	Fixed  bool // use a fixed, scrollable height
	Height int  // fixed height when Fixed is set; 0 means natural height
}

// WidgetAdapter is the capability a controller needs from one selection
// widget of the chain.
type WidgetAdapter interface {
	// ID names the widget; ids must be unique within a chain.
	ID() string
	// Configure receives the chain's widget options once, at bind time.
	Configure(opts Options) error
	// Bind subscribes h to events of the given kind.
	Bind(kind EventKind, h Handler)
	// SetEnabled enables or disables user interaction.
	SetEnabled(enabled bool)
	// Refresh re-renders the widget from doc.
	Refresh(hint LayoutHint, doc *Document)
}

// Container supplies the widgets of a chain in order and listens for
// aggregate selection changes.
type Container interface {
	Widgets() []WidgetAdapter
	StateChanged(checkedCount int)
}

// TreeBuilder turns caller data into the option tree.
type TreeBuilder func(data any) (*tree.Tree, error)
