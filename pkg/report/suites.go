package report

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// BySuite groups per-test rows by suite, sorted by suite name.
// Rows without a suite are grouped under "".
func BySuite(units []Unit) []SuiteTotals {
	idx := map[string]int{}
	var out []SuiteTotals
	for _, u := range units {
		i, ok := idx[u.Suite]
		if !ok {
			i = len(out)
			idx[u.Suite] = i
			out = append(out, SuiteTotals{Suite: u.Suite})
		}
		out[i].Tests++
		out[i].TotalJoules += u.TotalJoules
		out[i].TotalCO2eGrams += u.CO2eGrams
	}
	slices.SortFunc(out, func(a, b SuiteTotals) int { return cmp.Compare(a.Suite, b.Suite) })
	return out
}

// Rank returns the units with the lowest and highest total energy. Ties go
// to the first row.
func Rank(units []Unit) (Ranking, error) {
	if len(units) == 0 {
		return Ranking{}, ErrEmptyRun
	}
	joules := make([]float64, len(units))
	for i, u := range units {
		joules[i] = u.TotalJoules
	}
	return Ranking{
		MostEfficient:  units[floats.MinIdx(joules)],
		LeastEfficient: units[floats.MaxIdx(joules)],
	}, nil
}
