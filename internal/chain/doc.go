// Package chain keeps a sequence of grouped selection widgets in sync with a
// hierarchical tree of options.
//
// A Controller owns one tree and one Document per widget. Widget i shows the
// options of depth-i nodes; checking a node reveals the group holding its
// children in widget i+1, unchecking it hides every descendant. Widgets are
// reached only through the WidgetAdapter capability, so the same engine
// drives a terminal widget, a headless recorder in tests, or anything else
// that can render a Document.
//
// Controllers are single-threaded: events are handled one at a time on the
// caller's goroutine and Document mutations made by the controller never
// raise widget events.
package chain
