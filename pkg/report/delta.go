package report

// Compare computes the savings of optimized relative to baseline.
func Compare(baseline, optimized Summary) Delta {
	return Delta{
		BaselineTotalCO2eGrams:  baseline.TotalCO2eGrams,
		OptimizedTotalCO2eGrams: optimized.TotalCO2eGrams,
		CO2eGramsSaved:          baseline.TotalCO2eGrams - optimized.TotalCO2eGrams,
		PercentReductionCO2e:    percentReduction(baseline.TotalCO2eGrams, optimized.TotalCO2eGrams),
		BaselineTotalJoules:     baseline.TotalJoules,
		OptimizedTotalJoules:    optimized.TotalJoules,
		JoulesSaved:             baseline.TotalJoules - optimized.TotalJoules,
		PercentReductionJoules:  percentReduction(baseline.TotalJoules, optimized.TotalJoules),
	}
}

// percentReduction is 0 for a non-positive baseline.
func percentReduction(baseline, optimized float64) float64 {
	if baseline <= 0 {
		return 0
	}
	return (baseline - optimized) / baseline * 100
}

// CompareFiles reads two summary files and compares them.
func CompareFiles(baselinePath, optimizedPath string) (Delta, error) {
	base, err := ReadSummary(baselinePath)
	if err != nil {
		return Delta{}, err
	}
	opt, err := ReadSummary(optimizedPath)
	if err != nil {
		return Delta{}, err
	}
	return Compare(base, opt), nil
}
