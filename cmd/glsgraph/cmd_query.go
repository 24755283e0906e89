package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dd0wney/glsgraph/pkg/importer"
	"github.com/dd0wney/glsgraph/pkg/model"
	"github.com/dd0wney/glsgraph/pkg/validation"
	"github.com/spf13/cobra"
)

// traceResult is the --json form of a trace
type traceResult struct {
	From       string       `json:"from"`
	To         string       `json:"to,omitempty"`
	MaxDepth   int          `json:"max_depth"`
	Found      bool         `json:"found"`
	TotalDelay float64      `json:"total_delay"`
	Nodes      []string     `json:"nodes"`
	Edges      []model.Edge `json:"edges"`
}

func (a *app) traceCmd() *cobra.Command {
	var (
		maxDepth   int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "trace START [END]",
		Short: "Find the highest-delay path from a pin or net",
		Long: `Searches forward from START for the simple path whose summed edge delay
(the larger of rise and fall per edge) is greatest, using at most
--max-depth hops. With END the path must finish there.

Examples:
  glsgraph trace u_cell_3486.A1
  glsgraph trace u1.Q n42 --max-depth 20
  glsgraph trace u1.Q --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end := args[0], ""
			if len(args) == 2 {
				end = args[1]
			}
			for _, name := range args {
				if err := validation.ValidateName(name); err != nil {
					return err
				}
			}
			if maxDepth <= 0 {
				maxDepth = a.cfg.Query.MaxDepth
			}

			ctx := cmd.Context()
			store, err := a.openExistingStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			tracer := importer.NewTracer(store, maxDepth, importer.WithLogger(a.logger))
			path, err := tracer.Trace(ctx, start, end)
			if err != nil {
				return err
			}

			if jsonOutput {
				nodes := path.Nodes()
				if nodes == nil {
					nodes = []string{}
				}
				return writeJSON(a.stdout, traceResult{
					From:       start,
					To:         end,
					MaxDepth:   maxDepth,
					Found:      !path.Empty(),
					TotalDelay: path.Total,
					Nodes:      nodes,
					Edges:      path.Edges,
				})
			}
			printPath(a.stdout, start, end, path)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum hops (0 = configured default)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON for scripting")
	return cmd
}

func printPath(w io.Writer, start, end string, path importer.Path) {
	if path.Empty() {
		if end != "" {
			fmt.Fprintf(w, "No path found from %s to %s\n", start, end)
		} else {
			fmt.Fprintf(w, "No path found from %s\n", start)
		}
		return
	}

	fmt.Fprintf(w, "Critical path from %s (%d hops, total delay %.4f)\n", start, len(path.Edges), path.Total)
	for _, e := range path.Edges {
		fmt.Fprintf(w, "  %-32s -> %-32s rise %.4f  fall %.4f\n", e.Src, e.Dst, e.DelayRise, e.DelayFall)
	}
}

func (a *app) statsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show node, edge and annotated edge counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := a.openExistingStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(ctx)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(a.stdout, stats)
			}

			fmt.Fprintf(a.stdout, "Database:        %s\n", store.Path())
			fmt.Fprintf(a.stdout, "Nodes:           %d\n", stats.Nodes)
			fmt.Fprintf(a.stdout, "Edges:           %d\n", stats.Edges)
			fmt.Fprintf(a.stdout, "Annotated edges: %d\n", stats.AnnotatedEdges)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON for scripting")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
