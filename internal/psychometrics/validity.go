// internal/psychometrics/validity.go
package psychometrics

import "career-assessment-workers/internal/models"

// Response-bias thresholds.
const (
	StraightLineMinItems     = 5
	MinDifferentiation       = 5.0
	MinResponseConsistency   = 0.5
	RapidResponseMinTimed    = 5
	RapidResponseMedianMs    = 1500.0
	straightLineInvalidShare = 0.5
)

// ValidityInput bundles what the validity analyzer reads.
type ValidityInput struct {
	Aggregates map[string]*models.DimensionAggregate
	Scores     map[string]models.DimensionScore
	Order      []string
	Responses  []models.RawResponse
	Alpha      float64
}

// AnalyzeValidity flags response-bias patterns. It never fails; every
// problem is reported as a flag and a status downgrade.
func AnalyzeValidity(in ValidityInput) models.ValidityReport {
	report := models.ValidityReport{Status: models.ValidityValid}

	var (
		consistencies []float64
		normalized    []float64
		scored        int
	)
	for _, dim := range in.Order {
		agg := in.Aggregates[dim]
		if !agg.HasData() {
			report.NoDataDimensions = append(report.NoDataDimensions, dim)
			continue
		}
		scored++
		normalized = append(normalized, in.Scores[dim].Normalized)

		if c, ok := DimensionConsistency(agg.ItemValues); ok {
			consistencies = append(consistencies, c)
		}
		if IsStraightLined(agg.ItemValues) {
			report.StraightLinedDimensions = append(report.StraightLinedDimensions, dim)
		}
	}

	if scored == 0 {
		report.ResponseConsistency = 0
		report.AddFlag(models.FlagNoData, models.ValidityInvalid)
		return report
	}
	if len(report.NoDataDimensions) > 0 {
		report.AddFlag(models.FlagNoData, models.ValidityValid)
	}

	report.ResponseConsistency = 1
	if len(consistencies) > 0 {
		report.ResponseConsistency = Round(Mean(consistencies), 3)
	}
	if report.ResponseConsistency < MinResponseConsistency {
		report.AddFlag(models.FlagLowConsistency, models.ValidityQuestionable)
	}

	if n := len(report.StraightLinedDimensions); n > 0 {
		status := models.ValidityQuestionable
		if float64(n) >= float64(scored)*straightLineInvalidShare {
			status = models.ValidityInvalid
		}
		report.AddFlag(models.FlagStraightLining, status)
	}

	report.ProfileDifferentiation = Round(SampleStdDev(normalized), 2)
	if len(normalized) > 1 && report.ProfileDifferentiation < MinDifferentiation {
		report.AddFlag(models.FlagLowDifferentiation, models.ValidityQuestionable)
	}

	if in.Alpha < ReliabilityStandard {
		report.AddFlag(models.FlagLowReliability, models.ValidityValid)
	}

	if IsRapidResponding(in.Responses) {
		report.AddFlag(models.FlagRapidResponding, models.ValidityQuestionable)
	}

	return report
}

// DimensionConsistency inverts the coefficient of variation of one item list
// into a 0-1 score. ok is false when the list cannot be assessed.
func DimensionConsistency(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	m := Mean(values)
	if m <= epsilon {
		return 0, false
	}
	cv := SampleStdDev(values) / m
	if cv > 1 {
		cv = 1
	}
	return 1 - cv, true
}

// IsStraightLined reports identical answers across enough items.
func IsStraightLined(values []float64) bool {
	return len(values) >= StraightLineMinItems && SampleStdDev(values) <= epsilon
}

// IsRapidResponding reports a median answer time below the plausible floor.
// Untimed and skipped answers are ignored.
func IsRapidResponding(responses []models.RawResponse) bool {
	times := make([]float64, 0, len(responses))
	for _, r := range responses {
		if r.Skipped || r.ResponseTimeMs <= 0 {
			continue
		}
		times = append(times, float64(r.ResponseTimeMs))
	}
	if len(times) < RapidResponseMinTimed {
		return false
	}
	return Median(times) < RapidResponseMedianMs
}
