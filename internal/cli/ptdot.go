package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmrtools/bbsbbu/pkg/instance"
	"github.com/nmrtools/bbsbbu/pkg/order/pt"
)

// ptDotTmax bounds the debug pt-dot run finding the precedence DAG to
// render: it is a standalone inspection tool, not the solve path, so it
// does not take a -tmax flag of its own.
const ptDotTmax = 60 * time.Second

// ptDotCommand creates the "pt-dot" debug command: solves an .nmr
// instance with the Priority-Tree solver and renders its winning
// precedence DAG for inspection.
func (c *CLI) ptDotCommand() *cobra.Command {
	var (
		fnmr   string
		output string
		dotOut bool
	)

	cmd := &cobra.Command{
		Use:   "pt-dot --fnmr path [-o output.svg]",
		Short: "Render the Priority-Tree precedence DAG for an .nmr instance (debug tool)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fnmr == "" && len(args) > 0 {
				fnmr = args[0]
			}
			if fnmr == "" {
				return fmt.Errorf("pt-dot: --fnmr is required")
			}

			inst, err := instance.Load(fnmr)
			if err != nil {
				return fmt.Errorf("load %s: %w", fnmr, err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), ptDotTmax)
			defer cancel()
			res := pt.Solve(ctx, inst, ptDotTmax)

			if dotOut {
				dot := pt.ToDOT(inst, res.Assigned)
				if output == "" {
					fmt.Print(dot)
					return nil
				}
				return os.WriteFile(output, []byte(dot), 0o644)
			}

			svg, err := pt.RenderSVG(inst, res.Assigned)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			if output == "" {
				output = fnmr + ".pt.svg"
			}
			if err := os.WriteFile(output, svg, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			printSuccess("Priority-Tree solved")
			printKeyValue("Cost", res.Cost.String())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&fnmr, "fnmr", "", "path to the .nmr instance file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if --dot and empty)")
	cmd.Flags().BoolVar(&dotOut, "dot", false, "emit Graphviz DOT instead of rendering SVG")

	return cmd
}
