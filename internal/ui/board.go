package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chainsel/internal/chain"
)

// Board lays out the widgets of one chain side by side. It is the chain's
// container and the bubbletea model of the run command.
type Board struct {
	title   string
	widgets []*Widget
	keys    KeyMap
	focus   int
	checked int
	lastErr error
	width   int
	done    bool
}

// NewBoard creates a board with one widget per id, in chain order.
func NewBoard(title string, ids ...string) *Board {
	b := &Board{title: title, keys: DefaultKeyMap(), width: 80}
	for _, id := range ids {
		b.widgets = append(b.widgets, NewWidget(id))
	}
	if len(b.widgets) > 0 {
		b.widgets[0].SetFocus(true)
	}
	return b
}

// Widgets implements chain.Container.
func (b *Board) Widgets() []chain.WidgetAdapter {
	out := make([]chain.WidgetAdapter, len(b.widgets))
	for i, w := range b.widgets {
		out[i] = w
	}
	return out
}

// StateChanged implements chain.Container.
func (b *Board) StateChanged(checkedCount int) {
	b.checked = checkedCount
	b.lastErr = nil
}

// Checked returns the last checked count reported by the chain.
func (b *Board) Checked() int { return b.checked }

// Widget returns the widget at depth.
func (b *Board) Widget(depth int) *Widget { return b.widgets[depth] }

// Focus returns the depth of the focused widget.
func (b *Board) Focus() int { return b.focus }

// Err returns the last handler error, cleared by the next state change.
func (b *Board) Err() error { return b.lastErr }

func (b *Board) Init() tea.Cmd { return nil }

func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			b.width = msg.Width
		}
		return b, nil
	case ErrorMsg:
		b.lastErr = fmt.Errorf("%s: %w", msg.Widget, msg.Err)
		return b, nil
	case tea.KeyMsg:
		if len(b.widgets) == 0 {
			return b, tea.Quit
		}
		current := b.widgets[b.focus]
		if !current.Filtering() {
			switch {
			case key.Matches(msg, b.keys.Quit):
				b.done = true
				return b, tea.Quit
			case key.Matches(msg, b.keys.Next):
				b.moveFocus(1)
				return b, nil
			case key.Matches(msg, b.keys.Prev):
				b.moveFocus(-1)
				return b, nil
			}
		}
		cmd := current.Update(msg)
		b.keepFocusEnabled()
		return b, cmd
	}
	return b, nil
}

// moveFocus steps to the next enabled widget in direction dir, staying put
// when there is none.
func (b *Board) moveFocus(dir int) {
	for i := b.focus + dir; i >= 0 && i < len(b.widgets); i += dir {
		if b.widgets[i].Enabled() {
			b.setFocus(i)
			return
		}
	}
}

// keepFocusEnabled moves focus back up the chain when the focused widget
// was disabled by the last event.
func (b *Board) keepFocusEnabled() {
	for i := b.focus; i >= 0; i-- {
		if b.widgets[i].Enabled() {
			b.setFocus(i)
			return
		}
	}
}

func (b *Board) setFocus(i int) {
	if i == b.focus {
		return
	}
	b.widgets[b.focus].SetFocus(false)
	b.widgets[i].SetFocus(true)
	b.focus = i
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	focusedPanelStyle = panelStyle.BorderForeground(lipgloss.Color("6"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (b *Board) View() string {
	if b.done {
		return ""
	}
	panels := make([]string, 0, len(b.widgets))
	for i, w := range b.widgets {
		style := panelStyle
		if i == b.focus {
			style = focusedPanelStyle
		}
		panels = append(panels, style.Render(w.View()))
	}

	var sb strings.Builder
	if b.title != "" {
		sb.WriteString(titleStyle.Render(b.title))
		sb.WriteString("\n")
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(fmt.Sprintf("%d checked", b.checked)))
	if b.lastErr != nil {
		sb.WriteString("  ")
		sb.WriteString(errorStyle.Render(truncate(b.lastErr.Error(), b.width-16)))
	}
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(b.helpLine()))
	sb.WriteString("\n")
	return sb.String()
}

func (b *Board) helpLine() string {
	parts := make([]string, 0, 6)
	for _, binding := range b.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return truncate(strings.Join(parts, " • "), b.width)
}
