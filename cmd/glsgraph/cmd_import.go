package main

import (
	"fmt"
	"time"

	"github.com/dd0wney/glsgraph/pkg/importer"
	"github.com/dd0wney/glsgraph/pkg/sdf"
	"github.com/dd0wney/glsgraph/pkg/verilog"
	"github.com/spf13/cobra"
)

func (a *app) importVerilogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-verilog FILE",
		Short: "Import a gate-level Verilog netlist",
		Long: `Reads the netlist twice: first every signal declared by a wire, input,
output or inout statement becomes a node, then every instance pin connection
and assign statement becomes a zero-delay edge.
Importing the same file again appends its edges a second time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			obs, finish := a.progressFor(args[0])
			imp := importer.NewNetlistImporter(store, verilog.NewParser(a.cfg.Import.NetlistBatchSize), a.importerOptions()...)
			summary, err := imp.Import(ctx, args[0], obs)
			finish(err == nil)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Imported %d nodes and %d edges from %s in %s\n",
				summary.Nodes, summary.Edges, summary.File, summary.Duration.Round(time.Millisecond))
			return nil
		},
	}
}

func (a *app) importSDFCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-sdf FILE",
		Short: "Annotate imported edges with SDF interconnect delays",
		Long: `Reads INTERCONNECT records and sets the rise/fall delay of every edge
leaving the record's sink pin. Records that match no edge are ignored and
no edges are created. Run import-verilog first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			obs, finish := a.progressFor(args[0])
			imp := importer.NewDelayImporter(store, sdf.NewParser(a.cfg.Import.DelayBatchSize), a.importerOptions()...)
			summary, err := imp.Import(ctx, args[0], obs)
			finish(err == nil)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Annotated %d edges from %d delay records (%d skipped) in %s\n",
				summary.Updated, summary.Delays, summary.Skipped, summary.Duration.Round(time.Millisecond))
			return nil
		},
	}
}
