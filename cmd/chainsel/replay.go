package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chainsel/internal/dataset"
	"chainsel/internal/headless"
)

var (
	replayManifest string
	replayGroup    string
)

func init() {
	replayCmd.Flags().StringVar(&replayManifest, "manifest", "", "manifest path (default: nearest chainsel.toml)")
	replayCmd.Flags().StringVar(&replayGroup, "group", "", "group to replay against (default: first group)")
}

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Replay an event script against a headless chain",
	Long: `replay drives a group's chain without a terminal. Each script line is one of:

  check <widget> <value>      uncheck <widget> <value>
  checkall <widget>           uncheckall <widget>
  group <widget> on|off <id>  set <element-id>
  refresh <widget>|all

The final state of every widget is printed afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: withTracing(func(cmd *cobra.Command, args []string) error {
		var manifestArgs []string
		if replayManifest != "" {
			manifestArgs = []string{replayManifest}
		}
		m, err := resolveManifest(manifestArgs)
		if err != nil {
			return err
		}
		g, err := m.group(replayGroup)
		if err != nil {
			return err
		}
		data, err := dataset.Load(m.dataPath(g))
		if err != nil {
			return err
		}
		c := headless.NewContainer(g.Widgets...)
		ctrl, err := buildChain(cmd.Context(), g, data, c)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		if err := headless.Replay(ctrl, c, f); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		for depth := range g.Widgets {
			fmt.Fprint(out, c.Widget(depth).Dump())
		}
		fmt.Fprintf(out, "%d checked\n", ctrl.CountChecked())
		return nil
	}),
}
