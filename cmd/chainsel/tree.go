package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"chainsel/internal/dataset"
	"chainsel/internal/elemid"
	"chainsel/internal/tree"
)

var (
	treeWidgets int
	treeFrom    string
)

func init() {
	treeCmd.Flags().IntVar(&treeWidgets, "widgets", 0, "mark nodes a chain of this many widgets never shows")
	treeCmd.Flags().StringVar(&treeFrom, "from", "", "print only the subtree at this path, e.g. 0/1")
}

var (
	treePathColor   = color.New(color.FgCyan)
	treeIDColor     = color.New(color.Faint)
	treeHiddenColor = color.New(color.FgRed)
)

var treeCmd = &cobra.Command{
	Use:   "tree <data-file>",
	Short: "Print the option tree of a data file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := dataset.Load(args[0])
		if err != nil {
			return err
		}
		t, err := dataset.Build(data)
		if err != nil {
			return err
		}
		path, err := tree.ParsePath(treeFrom)
		if err != nil {
			return err
		}
		from, err := t.Lookup(path)
		if err != nil {
			return fmt.Errorf("--from %s: %w", treeFrom, err)
		}
		printTree(cmd.OutOrStdout(), t, from, treeWidgets)
		return nil
	},
}

func printTree(out io.Writer, t *tree.Tree, from tree.NodeID, widgets int) {
	for id := range t.Walk(from) {
		n := t.Get(id)
		if n.IsRoot() {
			continue
		}
		indent := strings.Repeat("  ", n.Depth)
		line := fmt.Sprintf("%s%s %s %s", indent,
			treePathColor.Sprint(n.Path.String()),
			n.Payload.Label,
			treeIDColor.Sprint(elemid.FromPath(n.Path)))
		if n.Payload.Value != n.Payload.Label {
			line += " = " + n.Payload.Value
		}
		if widgets > 0 && n.Depth >= widgets {
			line += " " + treeHiddenColor.Sprint("(beyond chain)")
		}
		fmt.Fprintln(out, line)
	}
}
