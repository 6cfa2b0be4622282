// Package projection extrapolates the savings of one delta to a year of
// test runs.
package projection

import (
	"github.com/ja7ad/greenmeter/pkg/consumption"
	"github.com/ja7ad/greenmeter/pkg/report"
)

const (
	DaysPerYear = 365

	DefaultEnergyPricePerKWh = 0.12 // USD
	DefaultCreditPricePerTon = 25.0 // USD per tonne CO2e

	// Yearly CO2e of an average passenger car and yearly uptake of one tree.
	carTonnesPerYear = 4.6
	treeKgPerYear    = 22.0
)

// Params holds the economic assumptions. Zero fields use the defaults.
type Params struct {
	EnergyPricePerKWh float64
	CreditPricePerTon float64
}

func (p Params) withDefaults() Params {
	if p.EnergyPricePerKWh <= 0 {
		p.EnergyPricePerKWh = DefaultEnergyPricePerKWh
	}
	if p.CreditPricePerTon <= 0 {
		p.CreditPricePerTon = DefaultCreditPricePerTon
	}
	return p
}

// Projection is the yearly impact of running the optimized suite instead of
// the baseline dailyRuns times a day.
type Projection struct {
	DailyRuns         int     `json:"daily_runs"`
	EnergyPricePerKWh float64 `json:"energy_cost_per_kwh"`
	CreditPricePerTon float64 `json:"carbon_credit_cost_per_ton"`

	DailyEnergySavedKWh float64 `json:"daily_energy_saved_kwh"`
	DailyCarbonSavedKg  float64 `json:"daily_carbon_saved_kg"`

	AnnualEnergySavedKWh   float64 `json:"annual_energy_saved_kwh"`
	AnnualCarbonSavedKg    float64 `json:"annual_carbon_saved_kg"`
	AnnualCarbonSavedTons  float64 `json:"annual_carbon_saved_tons"`
	EquivalentCarsRemoved  float64 `json:"equivalent_cars_removed"`
	EquivalentTreesPlanted float64 `json:"equivalent_trees_planted"`

	EnergyCostSavings   float64 `json:"energy_cost_savings"`
	CarbonCreditSavings float64 `json:"carbon_credit_savings"`
	TotalSavings        float64 `json:"total_savings"`
}

// Project scales the per-run savings of d. Negative savings (a regression)
// project to negative figures.
func Project(d report.Delta, dailyRuns int, p Params) Projection {
	p = p.withDefaults()
	runs := float64(dailyRuns)

	dailyKWh := d.JoulesSaved * runs / consumption.JoulesPerKWh
	dailyKg := d.CO2eGramsSaved * runs / 1000

	annualKWh := dailyKWh * DaysPerYear
	annualKg := dailyKg * DaysPerYear
	annualT := annualKg / 1000

	energyCost := annualKWh * p.EnergyPricePerKWh
	credits := annualT * p.CreditPricePerTon

	return Projection{
		DailyRuns:              dailyRuns,
		EnergyPricePerKWh:      p.EnergyPricePerKWh,
		CreditPricePerTon:      p.CreditPricePerTon,
		DailyEnergySavedKWh:    dailyKWh,
		DailyCarbonSavedKg:     dailyKg,
		AnnualEnergySavedKWh:   annualKWh,
		AnnualCarbonSavedKg:    annualKg,
		AnnualCarbonSavedTons:  annualT,
		EquivalentCarsRemoved:  annualT / carTonnesPerYear,
		EquivalentTreesPlanted: annualKg / treeKgPerYear,
		EnergyCostSavings:      energyCost,
		CarbonCreditSavings:    credits,
		TotalSavings:           energyCost + credits,
	}
}
