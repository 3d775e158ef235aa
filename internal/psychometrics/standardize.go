// internal/psychometrics/standardize.go
package psychometrics

import (
	"math"

	"career-assessment-workers/internal/models"
)

// T-score scale and reporting bounds.
const (
	TScoreMean = 50.0
	TScoreSD   = 10.0
	TScoreMin  = 20.0
	TScoreMax  = 80.0

	// z is clamped to this magnitude before the percentile approximation
	zPercentileBound = 3.0
)

// NormLookup resolves normative data for a dimension. ok is false when no
// entry exists at any level of the fallback chain.
type NormLookup interface {
	Lookup(instrument models.InstrumentCode, dimension string, demo models.Demographics) (models.Norm, bool)
}

// DefaultNorm is applied when no normative entry exists.
var DefaultNorm = models.Norm{Mean: DefaultNormMean, StdDev: DefaultNormSD, Basis: models.NormBasisNormalized}

// Standardizer derives z, T, percentile and stanine from normative data.
type Standardizer struct {
	norms NormLookup
}

func NewStandardizer(norms NormLookup) *Standardizer {
	return &Standardizer{norms: norms}
}

// NormFor returns the norm for a dimension, or DefaultNorm.
func (s *Standardizer) NormFor(instrument models.InstrumentCode, dimension string, demo models.Demographics) models.Norm {
	if s == nil || s.norms == nil {
		return DefaultNorm
	}
	norm, ok := s.norms.Lookup(instrument, dimension, demo)
	if !ok {
		return DefaultNorm
	}
	if norm.Basis == "" {
		norm.Basis = models.NormBasisNormalized
	}
	return norm
}

// Standardize fills the standardized fields of score in place. Dimensions
// without data stay at z=0.
func (s *Standardizer) Standardize(instrument models.InstrumentCode, dimension string, demo models.Demographics, score *models.DimensionScore) {
	z := 0.0
	if !score.NoData {
		norm := s.NormFor(instrument, dimension, demo)
		observed := score.Normalized
		if norm.Basis == models.NormBasisRawAverage {
			observed = score.RawAverage
		}
		z = ZScore(observed, norm.Mean, norm.StdDev)
	}
	ApplyZ(score, z)
}

// ZScore guards a zero or negative spread by returning 0.
func ZScore(observed, mean, sd float64) float64 {
	if sd <= epsilon || !IsFinite(observed) {
		return 0
	}
	return (observed - mean) / sd
}

// ApplyZ derives every standardized view from one z, rounded to the
// precision it is reported at.
func ApplyZ(score *models.DimensionScore, z float64) {
	z = Round(z, 3)
	score.ZScore = z
	score.TScore = TScore(z)
	score.Percentile = Percentile(z)
	score.Stanine = Stanine(z)
}

// TScore maps z onto the bounded T scale.
func TScore(z float64) float64 {
	return Round(Clamp(TScoreMean+TScoreSD*z, TScoreMin, TScoreMax), 1)
}

// Percentile approximates the standard normal CDF with the Zelen-Severo
// polynomial (|error| < 7.5e-8) and reports it as an integer percentage.
func Percentile(z float64) int {
	p := int(math.Round(NormalCDF(z) * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// NormalCDF evaluates the standard normal CDF for z clamped to [-3, 3].
func NormalCDF(z float64) float64 {
	z = Clamp(z, -zPercentileBound, zPercentileBound)
	const (
		p  = 0.2316419
		b1 = 0.319381530
		b2 = -0.356563782
		b3 = 1.781477937
		b4 = -1.821255978
		b5 = 1.330274429
	)
	x := math.Abs(z)
	t := 1 / (1 + p*x)
	pdf := math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
	poly := t * (b1 + t*(b2+t*(b3+t*(b4+t*b5))))
	upper := pdf * poly
	if z >= 0 {
		return 1 - upper
	}
	return upper
}

var stanineCuts = []float64{-1.75, -1.25, -0.75, -0.25, 0.25, 0.75, 1.25, 1.75}

// Stanine buckets z into the nine standard bands.
func Stanine(z float64) int {
	for i, cut := range stanineCuts {
		if z < cut {
			return i + 1
		}
	}
	return 9
}
