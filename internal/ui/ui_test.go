package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"chainsel/internal/chain"
	"chainsel/internal/dataset"
	"chainsel/internal/tree"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newBoard(t *testing.T, opts chain.Options) (*Board, *chain.Controller) {
	t.Helper()
	items := []dataset.Item{
		{Value: "eu", Label: "Europe", Children: []dataset.Item{
			{Value: "fr", Label: "France"},
			{Value: "de", Label: "Germany"},
		}},
		{Value: "as", Label: "Asia", Children: []dataset.Item{{Value: "jp", Label: "Japan"}}},
	}
	b := NewBoard("places", "region", "country")
	ctrl, err := chain.New(b, opts, items, dataset.Build)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ctrl.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return b, ctrl
}

func send(t *testing.T, b *Board, msgs ...tea.Msg) {
	t.Helper()
	for _, msg := range msgs {
		_, cmd := b.Update(msg)
		if cmd == nil {
			continue
		}
		if out, ok := cmd().(ErrorMsg); ok {
			b.Update(out)
		}
	}
}

func TestDecodeOptions(t *testing.T) {
	got, err := DecodeOptions(chain.Options{
		"title":         "Pick",
		"filter":        true,
		"selected_list": 2,
		"height":        int64(5),
		"unrelated":     "ignored",
	})
	if err != nil {
		t.Fatalf("DecodeOptions: %v", err)
	}
	if got.Title != "Pick" || !got.Filter || got.SelectedList != 2 || got.Height != 5 {
		t.Fatalf("decoded = %+v", got)
	}
	if got.NoneSelectedText != DefaultWidgetOptions().NoneSelectedText {
		t.Fatalf("defaults lost: %+v", got)
	}

	if _, err := DecodeOptions(chain.Options{"filter": []string{"x"}}); err == nil {
		t.Fatalf("expected error for mistyped option")
	}
	if _, err := DecodeOptions(chain.Options{"height": -1}); err == nil {
		t.Fatalf("expected error for negative height")
	}
}

func TestSummary(t *testing.T) {
	o := DefaultWidgetOptions()
	o.SelectedList = 2
	cases := []struct {
		selected []string
		want     string
	}{
		{nil, "Select options"},
		{[]string{"a", "b"}, "a, b"},
		{[]string{"a", "b", "c"}, "3 of 5 selected"},
	}
	for _, tc := range cases {
		if got := o.summary(tc.selected, 5); got != tc.want {
			t.Fatalf("summary(%v) = %q, want %q", tc.selected, got, tc.want)
		}
	}
}

func TestBoardRejectsBadOptions(t *testing.T) {
	b := NewBoard("x", "only")
	ctrl, err := chain.New(b, chain.Options{"min_width": "wide"}, []dataset.Item{{Value: "a"}}, dataset.Build)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ctrl.Initialize(); !errors.Is(err, chain.ErrConfiguration) {
		t.Fatalf("error = %v, want ErrConfiguration", err)
	}
}

func TestToggleRevealsNextWidget(t *testing.T) {
	b, ctrl := newBoard(t, nil)
	if b.Widget(1).Enabled() {
		t.Fatalf("country should start disabled")
	}
	send(t, b, runes("x"))
	if b.Checked() != 1 || ctrl.CountChecked() != 1 {
		t.Fatalf("checked = %d", b.Checked())
	}
	if !b.Widget(1).Enabled() {
		t.Fatalf("country should be enabled after checking a region")
	}
	rows := b.Widget(1).rows()
	if len(rows) != 3 || rows[0].Label != "Europe" || rows[2].Label != "Germany" {
		t.Fatalf("country rows = %+v", rows)
	}

	send(t, b, tea.KeyMsg{Type: tea.KeyTab})
	if b.Focus() != 1 {
		t.Fatalf("focus = %d, want 1", b.Focus())
	}
	// cursor on the group row: toggles every member
	send(t, b, runes("x"))
	if got := ctrl.CheckedValues()[1]; len(got) != 2 {
		t.Fatalf("country checked = %v", got)
	}
	send(t, b, runes("x"))
	if got := ctrl.CheckedValues()[1]; len(got) != 0 {
		t.Fatalf("country checked = %v", got)
	}
}

func TestToggleSharedValueUnderSecondGroup(t *testing.T) {
	items := []dataset.Item{
		{Value: "a", Children: []dataset.Item{{Value: "other"}}},
		{Value: "b", Children: []dataset.Item{{Value: "other"}}},
	}
	b := NewBoard("dups", "top", "sub")
	ctrl, err := chain.New(b, nil, items, dataset.Build)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ctrl.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	// rows of sub: "# a", other, "# b", other
	send(t, b, runes("a"), tea.KeyMsg{Type: tea.KeyTab}, runes("j"), runes("j"), runes("j"), runes("x"))
	if b.Err() != nil {
		t.Fatalf("toggle failed: %v", b.Err())
	}
	tr := ctrl.Tree()
	aOther, _ := tr.Lookup(tree.Path{0, 0})
	bOther, _ := tr.Lookup(tree.Path{1, 0})
	if tr.Checked(aOther) || !tr.Checked(bOther) {
		t.Fatalf("a/other=%v b/other=%v, want only b/other", tr.Checked(aOther), tr.Checked(bOther))
	}
}

func TestFocusFallsBackWhenDisabled(t *testing.T) {
	b, _ := newBoard(t, nil)
	send(t, b, runes("x"), tea.KeyMsg{Type: tea.KeyTab})
	if b.Focus() != 1 {
		t.Fatalf("focus = %d, want 1", b.Focus())
	}
	// unchecking the region from widget 0 disables widget 1
	send(t, b, tea.KeyMsg{Type: tea.KeyShiftTab}, runes("x"))
	if b.Widget(1).Enabled() {
		t.Fatalf("country should be disabled again")
	}
	send(t, b, tea.KeyMsg{Type: tea.KeyTab})
	if b.Focus() != 0 {
		t.Fatalf("focus moved to a disabled widget")
	}
}

func TestCheckAllAndUncheckAll(t *testing.T) {
	b, ctrl := newBoard(t, nil)
	send(t, b, runes("a"))
	if ctrl.CountChecked() != 2 {
		t.Fatalf("CountChecked() = %d, want 2", ctrl.CountChecked())
	}
	if rows := b.Widget(1).rows(); len(rows) != 5 {
		t.Fatalf("country rows = %d, want 5", len(rows))
	}
	send(t, b, runes("n"))
	if ctrl.CountChecked() != 0 || b.Widget(1).Enabled() {
		t.Fatalf("uncheck all left %d checked", ctrl.CountChecked())
	}
}

func TestFilter(t *testing.T) {
	b, _ := newBoard(t, chain.Options{"filter": true})
	send(t, b, runes("a"), tea.KeyMsg{Type: tea.KeyTab}, runes("/"))
	w := b.Widget(1)
	if !w.Filtering() {
		t.Fatalf("filter not active")
	}
	send(t, b, runes("j"), runes("a"))
	rows := w.rows()
	if len(rows) != 2 || rows[0].Label != "Asia" || rows[1].Label != "Japan" {
		t.Fatalf("filtered rows = %+v", rows)
	}
	send(t, b, tea.KeyMsg{Type: tea.KeyEnter})
	if w.Filtering() {
		t.Fatalf("enter should leave filter mode")
	}
	send(t, b, tea.KeyMsg{Type: tea.KeyEsc})
	if len(w.rows()) != 5 {
		t.Fatalf("esc should clear the filter")
	}
}

func TestFilterDisabledByDefault(t *testing.T) {
	b, _ := newBoard(t, nil)
	send(t, b, runes("/"))
	if b.Widget(0).Filtering() {
		t.Fatalf("filter should need the filter option")
	}
}

func TestScrollWindow(t *testing.T) {
	w := NewWidget("w")
	if err := w.Configure(chain.Options{"height": 3}); err != nil {
		t.Fatal(err)
	}
	doc := chain.NewDocument("w")
	for _, v := range []string{"a", "b", "c", "d", "e"} {
		if err := doc.AppendOption("", "t-"+v, v, v, false); err != nil {
			t.Fatal(err)
		}
	}
	w.SetEnabled(true)
	w.SetFocus(true)
	w.Refresh(chain.LayoutHint{Rows: 5, Fixed: true, Height: chain.DefaultFixedHeight}, doc)
	for range 4 {
		w.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if w.cursor != 4 || w.offset != 2 {
		t.Fatalf("cursor=%d offset=%d, want 4 and 2", w.cursor, w.offset)
	}
	view := w.View()
	if !strings.Contains(view, "[ ] e") || strings.Contains(view, "[ ] a") || strings.Contains(view, "more") {
		t.Fatalf("view does not end at the last row:\n%s", view)
	}

	w.Refresh(chain.LayoutHint{Rows: 5}, doc)
	if got := w.window(5); got != 5 {
		t.Fatalf("natural height window = %d, want 5", got)
	}
}

func TestHandlerErrorShown(t *testing.T) {
	b := NewBoard("x", "w")
	w := b.Widget(0)
	w.SetEnabled(true)
	doc := chain.NewDocument("w")
	if err := doc.AppendOption("", "t-0", "v", "v", false); err != nil {
		t.Fatal(err)
	}
	w.Refresh(chain.LayoutHint{Rows: 1}, doc)
	w.Bind(chain.EventItemToggled, func(chain.Event) error { return errors.New("boom") })

	send(t, b, runes("x"))
	if b.Err() == nil || !strings.Contains(b.View(), "boom") {
		t.Fatalf("handler error not surfaced: %v", b.Err())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Deutschland", 8); got != "Deuts..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short", 8); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
}
