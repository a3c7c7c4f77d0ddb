package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"chainsel/internal/chain"
	"chainsel/internal/elemid"
)

// ErrorMsg reports a handler error raised by a widget event.
type ErrorMsg struct {
	Widget string
	Err    error
}

// Widget is a terminal multi-select list implementing chain.WidgetAdapter.
// It only raises events from Update, in response to key presses.
type Widget struct {
	id       string
	opts     WidgetOptions
	keys     KeyMap
	handlers map[chain.EventKind]chain.Handler

	enabled bool
	focused bool
	doc     *chain.Document
	hint    chain.LayoutHint

	cursor    int
	offset    int
	filter    textinput.Model
	filtering bool
}

// NewWidget creates an unconfigured widget.
func NewWidget(id string) *Widget {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return &Widget{
		id:       id,
		opts:     DefaultWidgetOptions(),
		keys:     DefaultKeyMap(),
		handlers: make(map[chain.EventKind]chain.Handler),
		filter:   ti,
	}
}

func (w *Widget) ID() string { return w.id }

func (w *Widget) Configure(opts chain.Options) error {
	decoded, err := DecodeOptions(opts)
	if err != nil {
		return err
	}
	w.opts = decoded
	w.filter.Placeholder = decoded.FilterPlaceholder
	return nil
}

func (w *Widget) Bind(kind chain.EventKind, h chain.Handler) {
	w.handlers[kind] = h
}

func (w *Widget) SetEnabled(enabled bool) {
	w.enabled = enabled
	if !enabled {
		w.stopFiltering()
	}
}

func (w *Widget) Refresh(hint chain.LayoutHint, doc *chain.Document) {
	w.hint = hint
	w.doc = doc
	w.clamp()
}

// Enabled reports whether the widget accepts input.
func (w *Widget) Enabled() bool { return w.enabled }

// Options returns the decoded options.
func (w *Widget) Options() WidgetOptions { return w.opts }

// SetFocus marks the widget as the one receiving keys.
func (w *Widget) SetFocus(focused bool) {
	w.focused = focused
	if !focused {
		w.stopFiltering()
	}
}

// Filtering reports whether the filter input has the keyboard.
func (w *Widget) Filtering() bool { return w.filtering }

func (w *Widget) stopFiltering() {
	w.filtering = false
	w.filter.Blur()
}

// rows returns the visible elements matching the filter. Groups stay when
// at least one of their options matches.
func (w *Widget) rows() []chain.Element {
	if w.doc == nil {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(w.filter.Value()))
	var out []chain.Element
	var pending *chain.Element
	for _, el := range w.doc.Elements() {
		if el.Hidden {
			continue
		}
		if el.Kind == chain.KindGroup {
			g := el
			pending = &g
			if needle == "" {
				out = append(out, el)
				pending = nil
			}
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(el.Label), needle) {
			continue
		}
		if pending != nil && pending.ID == el.Group {
			out = append(out, *pending)
			pending = nil
		}
		out = append(out, el)
	}
	return out
}

// window is the number of rows drawn at once.
func (w *Widget) window(total int) int {
	if w.hint.Fixed && w.opts.Height > 0 && w.opts.Height < total {
		return w.opts.Height
	}
	return total
}

func (w *Widget) clamp() {
	total := len(w.rows())
	if w.cursor >= total {
		w.cursor = total - 1
	}
	if w.cursor < 0 {
		w.cursor = 0
	}
	win := w.window(total)
	if w.cursor < w.offset {
		w.offset = w.cursor
	}
	if win > 0 && w.cursor >= w.offset+win {
		w.offset = w.cursor - win + 1
	}
	if w.offset > total-win {
		w.offset = max(total-win, 0)
	}
}

// Update handles one message for the focused widget. Handler errors come
// back as an ErrorMsg command.
func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	if !w.enabled {
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if w.filtering {
		switch keyMsg.Type {
		case tea.KeyEnter:
			w.stopFiltering()
			return nil
		case tea.KeyEsc:
			w.filter.SetValue("")
			w.stopFiltering()
			w.clamp()
			return nil
		}
		var cmd tea.Cmd
		w.filter, cmd = w.filter.Update(msg)
		w.cursor, w.offset = 0, 0
		return cmd
	}

	var err error
	switch {
	case key.Matches(keyMsg, w.keys.Up):
		w.cursor--
		w.clamp()
	case key.Matches(keyMsg, w.keys.Down):
		w.cursor++
		w.clamp()
	case key.Matches(keyMsg, w.keys.Toggle):
		err = w.toggle()
	case key.Matches(keyMsg, w.keys.CheckAll):
		err = w.checkAll()
	case key.Matches(keyMsg, w.keys.UncheckAll):
		err = w.uncheckAll()
	case key.Matches(keyMsg, w.keys.Filter) && w.opts.Filter:
		w.filtering = true
		return w.filter.Focus()
	case key.Matches(keyMsg, w.keys.ClearFilter):
		w.filter.SetValue("")
		w.clamp()
	}
	if err != nil {
		id := w.id
		return func() tea.Msg { return ErrorMsg{Widget: id, Err: err} }
	}
	return nil
}

func (w *Widget) fire(ev chain.Event) error {
	h, ok := w.handlers[ev.Kind()]
	if !ok {
		return fmt.Errorf("widget %q: no handler for %s", w.id, ev.Kind())
	}
	return h(ev)
}

func (w *Widget) toggle() error {
	rows := w.rows()
	if w.cursor >= len(rows) {
		return nil
	}
	el := rows[w.cursor]
	if el.Kind == chain.KindGroup {
		members := w.doc.VisibleMembers(el.ID)
		checked := false
		for _, id := range members {
			if !w.doc.Selected(id) {
				checked = true
				break
			}
		}
		inputs := make([]string, 0, len(members))
		for _, id := range members {
			w.doc.SetSelected(id, checked)
			inputs = append(inputs, elemid.Decorate(id))
		}
		return w.fire(chain.GroupToggled{WidgetID: w.id, Checked: checked, Inputs: inputs})
	}
	checked := !el.Selected
	w.doc.SetSelected(el.ID, checked)
	return w.fire(chain.ItemToggled{WidgetID: w.id, ElementID: elemid.Decorate(el.ID), Value: el.Value, Checked: checked})
}

func (w *Widget) checkAll() error {
	if w.doc == nil {
		return nil
	}
	w.doc.SelectAll()
	return w.fire(chain.CheckAll{WidgetID: w.id, Selected: w.doc.Selected})
}

func (w *Widget) uncheckAll() error {
	if w.doc == nil {
		return nil
	}
	w.doc.DeselectAll()
	return w.fire(chain.UncheckAll{WidgetID: w.id, Selected: w.doc.Selected})
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	groupStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	disabledStyle = lipgloss.NewStyle().Faint(true)
	summaryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	checkedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// View renders the widget.
func (w *Widget) View() string {
	width := w.opts.MinWidth
	title := w.opts.Title
	if title == "" {
		title = w.id
	}

	var selected []string
	total := 0
	if w.doc != nil {
		for el := range w.doc.Options() {
			if el.Hidden {
				continue
			}
			total++
			if el.Selected {
				selected = append(selected, el.Label)
			}
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(truncate(title, width)))
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(truncate(w.opts.summary(selected, total), width)))
	b.WriteString("\n")
	if w.filtering || w.filter.Value() != "" {
		b.WriteString(w.filter.View())
		b.WriteString("\n")
	}

	rows := w.rows()
	win := w.window(len(rows))
	end := min(w.offset+win, len(rows))
	for i := w.offset; i < end; i++ {
		b.WriteString(w.renderRow(rows[i], i == w.cursor && w.focused, width))
		b.WriteString("\n")
	}
	if end < len(rows) {
		b.WriteString(summaryStyle.Render(fmt.Sprintf("  ... %d more", len(rows)-end)))
		b.WriteString("\n")
	}

	out := strings.TrimRight(b.String(), "\n")
	if !w.enabled {
		return disabledStyle.Render(out)
	}
	return out
}

func (w *Widget) renderRow(el chain.Element, atCursor bool, width int) string {
	prefix := "  "
	if atCursor {
		prefix = cursorStyle.Render("> ")
	}
	if el.Kind == chain.KindGroup {
		return prefix + groupStyle.Render(truncate(el.Label, width-2))
	}
	indent := ""
	if el.Group != "" {
		indent = "  "
	}
	box := "[ ]"
	if el.Selected {
		box = checkedStyle.Render("[x]")
	}
	return prefix + indent + box + " " + truncate(el.Label, width-len(indent)-6)
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
