package cli

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmrtools/bbsbbu/pkg/checkpoint"
	"github.com/nmrtools/bbsbbu/pkg/config"
	bberrors "github.com/nmrtools/bbsbbu/pkg/errors"
	"github.com/nmrtools/bbsbbu/pkg/instance"
	"github.com/nmrtools/bbsbbu/pkg/order"
	"github.com/nmrtools/bbsbbu/pkg/order/bb"
	"github.com/nmrtools/bbsbbu/pkg/order/pt"
	"github.com/nmrtools/bbsbbu/pkg/report"
)

// solveCommand creates the "solve" command: loads an .nmr instance, runs
// the requested algorithms, and writes a .log report.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		fnmr     string
		tmax     float64
		cleanLog bool
		logPath  string
		only     string
		ckptPath string
	)

	cmd := &cobra.Command{
		Use:   "solve [--fnmr path] [--tmax seconds] [--clean_log]",
		Short: "Solve the edge-ordering problem for an .nmr instance and write a .log report",
		Long: `Solve the edge-ordering problem for an .nmr instance and write a .log report.

Long flags take two dashes (--fnmr, --tmax, --clean_log); single-dash
spellings such as -fnmr are not accepted. The .nmr path may also be given
as the first positional argument.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fnmr == "" && len(args) > 0 {
				fnmr = args[0]
			}
			if fnmr == "" {
				return fmt.Errorf("solve: --fnmr is required")
			}

			cfg, err := config.Load(defaultConfigPath)
			if err != nil {
				return fmt.Errorf("read %s: %w", defaultConfigPath, err)
			}
			if !cmd.Flags().Changed("tmax") {
				switch {
				case cfg.TmaxSeconds > 0:
					tmax = cfg.TmaxSeconds
				default:
					tmax = defaultTmaxSeconds
				}
			}
			if !cmd.Flags().Changed("clean_log") && cfg.CleanLog {
				cleanLog = true
			}
			if logPath == "" {
				logPath = fnmr + ".log"
			}
			if ckptPath == "" {
				ckptPath = checkpoint.DefaultPath(fnmr)
			}

			logger := loggerFromContext(cmd.Context())

			inst, err := instance.Load(fnmr)
			if err != nil {
				return fmt.Errorf("load %s: %w", fnmr, err)
			}

			l, skipped, err := report.Open(logPath, cleanLog)
			if err != nil {
				return fmt.Errorf("open log %s: %w", logPath, err)
			}
			if skipped {
				printInfo("Log %s already exists, skipping (pass --clean_log to overwrite)", logPath)
				return nil
			}
			defer l.Close()

			if err := l.Metric("fnmr", fnmr); err != nil {
				return err
			}
			if err := l.Metric("tmax", tmax); err != nil {
				return err
			}
			if err := l.Metric("nnodes", inst.NNodes); err != nil {
				return err
			}
			if err := l.Metric("lenE", len(inst.E)); err != nil {
				return err
			}
			if err := l.Metric("lenS", len(inst.S)); err != nil {
				return err
			}

			uncovered := make(map[instance.SegmentID]struct{}, len(inst.S))
			for _, sid := range inst.SegmentIDs() {
				uncovered[sid] = struct{}{}
			}
			if err := l.Metric("costRX", order.CostRelax(uncovered, inst)); err != nil {
				return err
			}

			switch only {
			case "", "sbbu", "greedy", "bb", "pt":
			default:
				return fmt.Errorf("solve: --only %q is not one of sbbu, greedy, bb, pt", only)
			}
			runGreedy := only == "" || only == "greedy"
			runSBBU := only == "" || only == "sbbu"
			runBB := only == "" || only == "bb"
			runPT := only == "" || only == "pt"

			if runGreedy {
				prog := newProgress(logger)
				_, costGD := order.Greedy(inst)
				elapsed := time.Since(prog.start)
				prog.done(fmt.Sprintf("greedy: cost=%s", costGD))
				if err := l.Metric("costGD", costGD); err != nil {
					return err
				}
				if err := l.Metric("timeGD", elapsed.Seconds()); err != nil {
					return err
				}
			}

			var costSBBU *big.Int
			if runSBBU || runBB {
				prog := newProgress(logger)
				_, costSBBU = order.SBBU(inst)
				elapsed := time.Since(prog.start)
				prog.done(fmt.Sprintf("sbbu: cost=%s", costSBBU))
				if runSBBU {
					if err := l.Metric("costSB", costSBBU); err != nil {
						return err
					}
					if err := l.Metric("timeSB", elapsed.Seconds()); err != nil {
						return err
					}
				}
			}

			if runPT {
				ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(tmax*float64(time.Second)))
				defer cancel()

				prog := newProgress(logger)
				res := pt.Solve(ctx, inst, time.Duration(tmax*float64(time.Second)))
				elapsed := time.Since(prog.start)
				prog.done(fmt.Sprintf("pt: cost=%s timeout=%v", res.Cost, res.Timeout))
				if err := l.Metric("costPT", res.Cost); err != nil {
					return err
				}
				if err := l.Metric("timePT", elapsed.Seconds()); err != nil {
					return err
				}
				if err := l.Metric("timeoutPT", res.Timeout); err != nil {
					return err
				}
			}

			if runBB {
				var resume *checkpoint.Checkpoint
				if ck, err := checkpoint.Load(ckptPath); err == nil {
					resume = &ck
					logger.Infof("resuming BB search from checkpoint %s", ckptPath)
				} else if !isCheckpointMissing(err) {
					logger.Warnf("ignoring unreadable checkpoint %s: %v", ckptPath, err)
				}

				ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(tmax*float64(time.Second)))
				defer cancel()

				spin := newSpinnerWithContext(ctx, "running branch-and-bound...")
				spin.Start()
				prog := newProgress(logger)
				res, err := bb.Solve(ctx, inst, time.Duration(tmax*float64(time.Second)), resume, ckptPath)
				if err != nil && resume != nil && bberrors.Is(err, bberrors.ErrCodeCheckpointInvalid) {
					logger.Warnf("ignoring unusable checkpoint %s: %v", ckptPath, err)
					res, err = bb.Solve(ctx, inst, time.Duration(tmax*float64(time.Second)), nil, ckptPath)
				}
				spin.Stop()
				if err != nil {
					return fmt.Errorf("bb solve: %w", err)
				}
				elapsed := time.Since(prog.start)
				prog.done(fmt.Sprintf("bb: cost=%s timeout=%v", res.Cost, res.Timeout))

				if err := l.Metric("costBB", res.Cost); err != nil {
					return err
				}
				if err := l.Metric("timeBB", elapsed.Seconds()); err != nil {
					return err
				}
				if err := l.Metric("timeoutBB", res.Timeout); err != nil {
					return err
				}
			}

			printSuccess("Solved %s", fnmr)
			printFile(logPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&fnmr, "fnmr", "", "path to the .nmr instance file")
	cmd.Flags().Float64Var(&tmax, "tmax", defaultTmaxSeconds, "wall-clock budget per solver, in seconds")
	cmd.Flags().BoolVar(&cleanLog, "clean_log", false, "overwrite an existing .log file instead of skipping")
	cmd.Flags().StringVar(&logPath, "log", "", "output .log path (default: <fnmr>.log)")
	cmd.Flags().StringVar(&only, "only", "", "run a single algorithm: sbbu, greedy, bb, or pt (default: all)")
	cmd.Flags().StringVar(&ckptPath, "checkpoint", "", "checkpoint path for BB resume (default: <fnmr> with its extension replaced by .ckpt.json)")

	return cmd
}

// isCheckpointMissing reports whether err is the "no checkpoint found"
// case, as opposed to a checkpoint that exists but failed to parse. The
// two are handled differently: a missing checkpoint on a first run is
// routine and not logged, a corrupt one is logged as a warning.
func isCheckpointMissing(err error) bool {
	return bberrors.Is(err, bberrors.ErrCodeCheckpointMissing)
}
