package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ja7ad/greenmeter/pkg/consumption"
	"github.com/ja7ad/greenmeter/pkg/projection"
	"github.com/ja7ad/greenmeter/pkg/report"
	"github.com/ja7ad/greenmeter/pkg/types"
)

var (
	heading = color.New(color.Bold, color.FgCyan)
	good    = color.New(color.FgGreen)
	bad     = color.New(color.FgRed)
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// signed colors a saving green when positive and red when it is a regression.
func signed(format string, v float64) string {
	s := fmt.Sprintf(format, v)
	switch {
	case v > 0:
		return good.Sprint(s)
	case v < 0:
		return bad.Sprint(s)
	default:
		return s
	}
}

func printSummary(w io.Writer, s report.Summary, peak types.Bytes) {
	heading.Fprintln(w, "Run summary")
	tw := newTable(w)
	fmt.Fprintf(tw, "tests\t%d\n", s.Tests)
	fmt.Fprintf(tw, "peak memory\t%s\n", peak.Humanized())
	fmt.Fprintf(tw, "duration (s)\t%.3f\n", s.DurationSecTotal)
	fmt.Fprintf(tw, "cpu (s)\t%.3f\n", s.CPUSecTotal)
	fmt.Fprintf(tw, "energy (J)\t%.3f\n", s.TotalJoules)
	fmt.Fprintf(tw, "energy (kWh)\t%.3e\n", s.TotalKWh)
	fmt.Fprintf(tw, "carbon (g CO2e)\t%.5f\n", s.TotalCO2eGrams)
	fmt.Fprintf(tw, "avg per test (J)\t%.3f\n", s.AvgJoulesPerTest)
	fmt.Fprintf(tw, "avg per test (g CO2e)\t%.5f\n", s.AvgCO2eGramsPerTest)
	tw.Flush()
}

func printSuites(w io.Writer, suites []report.SuiteTotals) {
	if len(suites) == 0 {
		return
	}
	fmt.Fprintln(w)
	heading.Fprintln(w, "By suite")
	tw := newTable(w)
	fmt.Fprintln(tw, "SUITE\tTESTS\tENERGY (J)\tCARBON (g CO2e)")
	fmt.Fprintln(tw, "-----\t-----\t----------\t---------------")
	for _, s := range suites {
		name := s.Suite
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.5f\n", name, s.Tests, s.TotalJoules, s.TotalCO2eGrams)
	}
	tw.Flush()
}

func printRanking(w io.Writer, r report.Ranking) {
	fmt.Fprintln(w)
	heading.Fprintln(w, "Efficiency")
	tw := newTable(w)
	fmt.Fprintln(tw, "\tTEST\tENERGY (J)\tPEAK MEM\tAVG MEM")
	for _, row := range []struct {
		name string
		u    report.Unit
	}{
		{"most efficient", r.MostEfficient},
		{"least efficient", r.LeastEfficient},
	} {
		fmt.Fprintf(tw, "%s\t%s\t%.3f\t%s\t%s\n", row.name, row.u.TestID, row.u.TotalJoules,
			types.FromMB(row.u.PeakWSMB).Humanized(), types.FromMB(row.u.AvgWSMB).Humanized())
	}
	tw.Flush()
}

// peakMemory returns the largest per-unit peak of a run.
func peakMemory(units []report.Unit) types.Bytes {
	var peak float64
	for _, u := range units {
		peak = max(peak, u.PeakWSMB)
	}
	return types.FromMB(peak)
}

func printDelta(w io.Writer, d report.Delta) {
	heading.Fprintln(w, "Baseline vs optimized")
	tw := newTable(w)
	fmt.Fprintln(tw, "METRIC\tBASELINE\tOPTIMIZED\tSAVED\tREDUCTION")
	fmt.Fprintln(tw, "------\t--------\t---------\t-----\t---------")
	fmt.Fprintf(tw, "carbon (g CO2e)\t%.5f\t%.5f\t%s\t%s\n",
		d.BaselineTotalCO2eGrams, d.OptimizedTotalCO2eGrams,
		signed("%.5f", d.CO2eGramsSaved), signed("%.2f%%", d.PercentReductionCO2e))
	fmt.Fprintf(tw, "energy (J)\t%.3f\t%.3f\t%s\t%s\n",
		d.BaselineTotalJoules, d.OptimizedTotalJoules,
		signed("%.3f", d.JoulesSaved), signed("%.2f%%", d.PercentReductionJoules))
	tw.Flush()
}

func printProjection(w io.Writer, p projection.Projection) {
	heading.Fprintf(w, "Annual projection (%d runs/day)\n", p.DailyRuns)
	tw := newTable(w)
	fmt.Fprintf(tw, "energy saved (kWh/day)\t%.6f\n", p.DailyEnergySavedKWh)
	fmt.Fprintf(tw, "carbon saved (kg/day)\t%.6f\n", p.DailyCarbonSavedKg)
	fmt.Fprintf(tw, "energy saved (kWh/year)\t%s\n", signed("%.3f", p.AnnualEnergySavedKWh))
	fmt.Fprintf(tw, "carbon saved (kg/year)\t%s\n", signed("%.3f", p.AnnualCarbonSavedKg))
	fmt.Fprintf(tw, "cars removed\t%.4f\n", p.EquivalentCarsRemoved)
	fmt.Fprintf(tw, "trees planted\t%.2f\n", p.EquivalentTreesPlanted)
	fmt.Fprintf(tw, "energy cost savings\t%.2f (at %.2f/kWh)\n", p.EnergyCostSavings, p.EnergyPricePerKWh)
	fmt.Fprintf(tw, "carbon credit savings\t%.2f (at %.2f/t)\n", p.CarbonCreditSavings, p.CreditPricePerTon)
	fmt.Fprintf(tw, "total savings\t%s\n", signed("%.2f", p.TotalSavings))
	tw.Flush()
}

func printConfig(w io.Writer, c consumption.Config) {
	tw := newTable(w)
	fmt.Fprintf(tw, "grid_intensity_g_per_kwh\t%g\n", c.GridIntensity)
	fmt.Fprintf(tw, "avg_cpu_watts\t%g\n", c.CPUWatts)
	fmt.Fprintf(tw, "mem_watts_per_gb\t%g\n", c.MemWattsPerGB)
	tw.Flush()
}

const _console = `greenmeter - test energy and carbon estimation

Run %q as of %s UTC:

`
