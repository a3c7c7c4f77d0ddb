package headless

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"chainsel/internal/chain"
)

// Replay runs a line-oriented event script against a headless chain.
//
//	check <widget> <value>        user checks an option
//	uncheck <widget> <value>      user unchecks an option
//	checkall <widget>             select-all
//	uncheckall <widget>           deselect-all
//	group <widget> on|off <id>    toggle every visible option of a group
//	set <element-id>              check without refresh
//	refresh <widget>|all          refresh one or every widget
//
// Blank lines and lines starting with '#' are ignored. Values may contain
// spaces.
func Replay(ctrl *chain.Controller, c *Container, r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := replayLine(ctrl, c, text); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

func replayLine(ctrl *chain.Controller, c *Container, text string) error {
	fields := strings.Fields(text)
	cmd := fields[0]
	args := fields[1:]

	widget := func() (*Widget, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("%s: missing widget id", cmd)
		}
		w, ok := c.Lookup(args[0])
		if !ok {
			return nil, fmt.Errorf("%s: unknown widget %q", cmd, args[0])
		}
		return w, nil
	}

	switch cmd {
	case "check", "uncheck":
		w, err := widget()
		if err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("%s: missing option value", cmd)
		}
		return w.Click(strings.Join(args[1:], " "), cmd == "check")
	case "checkall":
		w, err := widget()
		if err != nil {
			return err
		}
		return w.CheckAll()
	case "uncheckall":
		w, err := widget()
		if err != nil {
			return err
		}
		return w.UncheckAll()
	case "group":
		w, err := widget()
		if err != nil {
			return err
		}
		if len(args) != 3 || (args[1] != "on" && args[1] != "off") {
			return fmt.Errorf("group: expected <widget> on|off <group-id>")
		}
		return w.ToggleGroup(args[2], args[1] == "on")
	case "set":
		if len(args) != 1 {
			return fmt.Errorf("set: expected one element id")
		}
		_, err := ctrl.Check(args[0])
		return err
	case "refresh":
		if len(args) == 1 && args[0] == "all" {
			ctrl.RefreshAll()
			return nil
		}
		w, err := widget()
		if err != nil {
			return err
		}
		return ctrl.Refresh(w.ID())
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
