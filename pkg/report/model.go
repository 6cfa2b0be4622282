package report

import "time"

// Unit is one row of the per-test file.
type Unit struct {
	TestID      string  `json:"test_id"`
	Suite       string  `json:"suite"`
	Outcome     string  `json:"outcome"`
	DurationSec float64 `json:"duration_s"`
	CPUSec      float64 `json:"cpu_s"`
	PeakWSMB    float64 `json:"peak_ws_mb"`
	AvgWSMB     float64 `json:"avg_ws_mb"`
	CPUJoules   float64 `json:"cpu_joules"`
	MemJoules   float64 `json:"mem_joules"`
	TotalJoules float64 `json:"total_joules"`
	KWh         float64 `json:"kwh"`
	CO2eGrams   float64 `json:"co2e_g"`
}

// Summary is the durable record of one run.
type Summary struct {
	RunLabel            string         `json:"run_label"`
	Tests               int            `json:"tests"`
	DurationSecTotal    float64        `json:"duration_s_total"`
	CPUSecTotal         float64        `json:"cpu_s_total"`
	TotalJoules         float64        `json:"total_joules"`
	TotalKWh            float64        `json:"total_kwh"`
	TotalCO2eGrams      float64        `json:"total_co2e_g"`
	AvgCO2eGramsPerTest float64        `json:"avg_co2e_g_per_test"`
	AvgJoulesPerTest    float64        `json:"avg_joules_per_test"`
	GridIntensity       float64        `json:"grid_intensity_g_per_kwh"`
	AvgCPUWatts         float64        `json:"avg_cpu_watts"`
	MemWattsPerGB       float64        `json:"mem_watts_per_gb"`
	GeneratedUTC        time.Time      `json:"generated_utc"`
	Meta                map[string]any `json:"meta"`
}

// Delta compares a baseline run with an optimized one. Savings are negative
// when the optimized run is worse.
type Delta struct {
	BaselineTotalCO2eGrams  float64 `json:"baseline_total_co2e_g"`
	OptimizedTotalCO2eGrams float64 `json:"optimized_total_co2e_g"`
	CO2eGramsSaved          float64 `json:"co2e_g_saved"`
	PercentReductionCO2e    float64 `json:"percent_reduction_co2e"`
	BaselineTotalJoules     float64 `json:"baseline_total_joules"`
	OptimizedTotalJoules    float64 `json:"optimized_total_joules"`
	JoulesSaved             float64 `json:"joules_saved"`
	PercentReductionJoules  float64 `json:"percent_reduction_joules"`
}

// SuiteTotals is the per-suite share of a run.
type SuiteTotals struct {
	Suite          string  `json:"suite"`
	Tests          int     `json:"tests"`
	TotalJoules    float64 `json:"total_joules"`
	TotalCO2eGrams float64 `json:"total_co2e_g"`
}

// Ranking names the cheapest and the most expensive unit of a run.
type Ranking struct {
	MostEfficient  Unit `json:"most_efficient"`
	LeastEfficient Unit `json:"least_efficient"`
}
