package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ja7ad/greenmeter/pkg/engine"
	"github.com/ja7ad/greenmeter/pkg/report"
	"github.com/ja7ad/greenmeter/pkg/system/proc"
	"github.com/ja7ad/greenmeter/pkg/tracker"
)

// commandSep separates commands in the argument list of exec.
const commandSep = ":::"

type execOpts struct {
	label       string
	out         string
	suite       string
	parallel    int
	interval    time.Duration
	metricsAddr string
}

func newExecCmd() *cobra.Command {
	var o execOpts

	cmd := &cobra.Command{
		Use:   "exec --label LABEL [flags] -- CMD [ARGS...] [::: CMD [ARGS...]]...",
		Short: "Run commands as measured units and write the run artifacts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd.Context(), o, args)
		},
	}

	cmd.Flags().StringVarP(&o.label, "label", "l", "baseline", "run label used in file names")
	cmd.Flags().StringVarP(&o.out, "out", "o", "reports", "output directory")
	cmd.Flags().StringVar(&o.suite, "suite", "", "suite name recorded for every unit")
	cmd.Flags().IntVarP(&o.parallel, "parallel", "p", 1, "maximum commands running at once")
	cmd.Flags().DurationVarP(&o.interval, "interval", "i", 0, "memory sampling interval (0 = default)")
	cmd.Flags().StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	return cmd
}

// unitCmd is one command of an exec run.
type unitCmd struct {
	id   string
	argv []string
}

// splitCommands cuts args at every separator. Empty groups are dropped and
// repeated command lines get a #n suffix so that unit ids stay unique.
func splitCommands(args []string) []unitCmd {
	var (
		out  []unitCmd
		cur  []string
		seen = map[string]int{}
	)
	flush := func() {
		if len(cur) == 0 {
			return
		}
		id := strings.Join(cur, " ")
		seen[id]++
		if n := seen[id]; n > 1 {
			id = fmt.Sprintf("%s#%d", id, n)
		}
		out = append(out, unitCmd{id: id, argv: cur})
		cur = nil
	}
	for _, a := range args {
		if a == commandSep {
			flush()
			continue
		}
		cur = append(cur, a)
	}
	flush()
	return out
}

func runExec(ctx context.Context, o execOpts, args []string) error {
	units := splitCommands(args)
	if len(units) == 0 {
		return errors.New("no commands provided")
	}
	if o.label == "" {
		return errors.New("label must not be empty")
	}
	if o.parallel < 1 {
		return fmt.Errorf("parallel must be >= 1, got %d", o.parallel)
	}

	cfg := loadConfig()
	eng, err := engine.New(
		engine.WithConfig(cfg),
		engine.WithInterval(o.interval),
	)
	if err != nil {
		return err
	}
	defer eng.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if o.metricsAddr != "" {
		srv := serveMetrics(o.metricsAddr, eng)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallel)
	for _, u := range units {
		g.Go(func() error {
			runUnit(gCtx, eng, o.suite, u)
			return nil
		})
	}
	_ = g.Wait()

	meta := map[string]any{
		"command":  "exec",
		"parallel": o.parallel,
		"commands": len(units),
	}
	if host, err := os.Hostname(); err == nil {
		meta["host"] = host
	}
	if ctx.Err() != nil {
		meta["interrupted"] = true
	}

	summary, err := eng.FlushTo(o.out, o.label, meta)
	if err != nil {
		return err
	}

	rows, err := report.ReadUnits(report.UnitsPath(o.out, o.label))
	if err != nil {
		return err
	}

	fmt.Printf(_console, summary.RunLabel, summary.GeneratedUTC.Format("2006-01-02 15:04:05"))
	printSummary(os.Stdout, summary, peakMemory(rows))
	printSuites(os.Stdout, report.BySuite(rows))
	if rank, err := report.Rank(rows); err == nil {
		printRanking(os.Stdout, rank)
	}

	fmt.Printf("\nwritten: %s, %s\n", report.UnitsPath(o.out, o.label), report.SummaryPath(o.out, o.label))
	return nil
}

// runUnit runs one command as a unit measured over its whole process tree.
func runUnit(ctx context.Context, eng *engine.Engine, suite string, u unitCmd) {
	c := exec.CommandContext(ctx, u.argv[0], u.argv[1:]...)
	c.Stdout = os.Stderr
	c.Stderr = os.Stderr

	if err := c.Start(); err != nil {
		slog.Warn("exec: start", "unit", u.id, "err", err)
		eng.StartWith(u.id, suite, idleProbe{})
		eng.End(u.id, tracker.Failed)
		return
	}

	tree, err := proc.NewTree(c.Process)
	if err != nil {
		slog.Warn("exec: probe", "unit", u.id, "err", err)
		_ = c.Wait()
		return
	}
	eng.StartWith(u.id, suite, tree)

	err = c.Wait()
	tree.Exited(c.ProcessState)

	outcome := tracker.Passed
	switch {
	case ctx.Err() != nil:
		outcome = tracker.Skipped
	case err != nil:
		outcome = tracker.Failed
	}

	m, _ := eng.End(u.id, outcome)
	slog.Debug("exec: unit done",
		"unit", u.id,
		"outcome", outcome,
		"duration_s", m.DurationSec,
		"cpu_s", m.CPUSec,
		"total_joules", m.TotalJoules)
}

// idleProbe stands in for commands that never started.
type idleProbe struct{}

func (idleProbe) CPUSeconds() (float64, error) { return 0, nil }
func (idleProbe) MemoryBytes() (uint64, error) { return 0, nil }

func serveMetrics(addr string, eng *engine.Engine) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(eng.Registry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("metrics: listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics: serve", "err", err)
		}
	}()
	return srv
}
