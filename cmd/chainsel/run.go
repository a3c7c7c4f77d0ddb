package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"chainsel/internal/dataset"
	"chainsel/internal/ui"
)

var (
	runGroup string
	runUI    string
)

func init() {
	runCmd.Flags().StringVar(&runGroup, "group", "", "group to run (default: first group)")
	runCmd.Flags().StringVar(&runUI, "ui", "auto", "interactive board (auto|on|off)")
}

var runCmd = &cobra.Command{
	Use:   "run [manifest]",
	Short: "Open the selection board for a group",
	Args:  cobra.MaximumNArgs(1),
	RunE: withTracing(func(cmd *cobra.Command, args []string) error {
		mode, err := readUIMode(runUI)
		if err != nil {
			return err
		}
		m, err := resolveManifest(args)
		if err != nil {
			return err
		}
		g, err := m.group(runGroup)
		if err != nil {
			return err
		}
		data, err := dataset.Load(m.dataPath(g))
		if err != nil {
			return err
		}

		board := ui.NewBoard(g.Name, g.Widgets...)
		ctrl, err := buildChain(cmd.Context(), g, data, board)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !shouldUseTUI(mode) {
			fmt.Fprint(out, board.View())
			return nil
		}

		program := tea.NewProgram(board, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(out), tea.WithContext(cmd.Context()))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("board: %w", err)
		}
		for depth, values := range ctrl.CheckedValues() {
			if len(values) == 0 {
				continue
			}
			fmt.Fprintf(out, "%s: %s\n", g.Widgets[depth], strings.Join(values, ", "))
		}
		fmt.Fprintf(out, "%d checked\n", ctrl.CountChecked())
		return nil
	}),
}
