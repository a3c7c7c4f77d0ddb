package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"chainsel/internal/chain"
	"chainsel/internal/dataset"
	"chainsel/internal/headless"
	"chainsel/internal/observ"
)

var checkTimings bool

func init() {
	checkCmd.Flags().BoolVar(&checkTimings, "timings", false, "show load and initialize timings")
}

type groupReport struct {
	name     string
	nodes    int
	widgets  int
	depth    int
	revealed int
}

var checkCmd = &cobra.Command{
	Use:   "check [manifest]",
	Short: "Load every group and initialize its chain headlessly",
	Args:  cobra.MaximumNArgs(1),
	RunE: withTracing(func(cmd *cobra.Command, args []string) error {
		m, err := resolveManifest(args)
		if err != nil {
			return err
		}
		timer := observ.NewTimer()
		reports, err := checkGroups(cmd, m, timer)
		if err != nil {
			return err
		}
		printReports(cmd.OutOrStdout(), reports)
		if checkTimings {
			fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
		}
		return nil
	}),
}

func checkGroups(cmd *cobra.Command, m *manifest, timer *observ.Timer) ([]groupReport, error) {
	groups := m.Config.Groups
	paths := make([]string, len(groups))
	for i, g := range groups {
		paths[i] = m.dataPath(g)
	}

	var data []dataset.Data
	err := timer.Measure("load", func() error {
		var err error
		data, err = dataset.LoadAll(cmd.Context(), paths)
		return err
	})
	if err != nil {
		return nil, err
	}

	reports := make([]groupReport, len(groups))
	eg, ctx := errgroup.WithContext(cmd.Context())
	for i, g := range groups {
		eg.Go(func() error {
			return timer.Measure("init "+g.Name, func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				c := headless.NewContainer(g.Widgets...)
				ctrl, err := buildChain(ctx, g, data[i], c)
				if err != nil {
					return err
				}
				reports[i] = reportFor(g, ctrl)
				return nil
			})
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func reportFor(g groupConfig, ctrl *chain.Controller) groupReport {
	t := ctrl.Tree()
	revealed := 0
	if doc, ok := ctrl.Document(g.Widgets[0]); ok {
		revealed = doc.VisibleRows()
	}
	return groupReport{
		name:     g.Name,
		nodes:    t.Len(),
		widgets:  ctrl.WidgetCount(),
		depth:    t.MaxDepth() + 1,
		revealed: revealed,
	}
}

func printReports(out io.Writer, reports []groupReport) {
	for _, r := range reports {
		fmt.Fprintf(out, "%s: %d nodes, %d levels, %d widgets, %d top-level options\n",
			r.name, r.nodes, r.depth, r.widgets, r.revealed)
		if r.depth > r.widgets {
			fmt.Fprintf(out, "  warning: levels below %d are never shown\n", r.widgets)
		}
	}
}
