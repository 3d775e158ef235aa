// internal/models/score.go
package models

// DimensionScore holds the normalized and standardized view of one dimension.
// TScore, Percentile and Stanine are always derived from ZScore.
type DimensionScore struct {
	RawScore   float64 `json:"rawScore"`
	RawAverage float64 `json:"rawAverage"`
	Normalized float64 `json:"normalized"`
	ZScore     float64 `json:"zScore"`
	TScore     float64 `json:"tScore"`
	Percentile int     `json:"percentile"`
	Stanine    int     `json:"stanine"`
	ItemCount  int     `json:"itemCount"`
	NoData     bool    `json:"noData,omitempty"`
}

// NormBasis names which score a normative entry is expressed against.
type NormBasis string

const (
	NormBasisNormalized NormBasis = "normalized"
	NormBasisRawAverage NormBasis = "raw_average"
)

// Norm is a normative mean and standard deviation for one dimension.
type Norm struct {
	Mean   float64   `json:"mean" yaml:"mean"`
	StdDev float64   `json:"stdDev" yaml:"std_dev"`
	Basis  NormBasis `json:"basis,omitempty" yaml:"basis,omitempty"`
}

// ConfidenceInterval is a 95% band around a T-score.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ReliabilityReport summarizes internal consistency of one attempt.
type ReliabilityReport struct {
	CronbachAlpha       float64                       `json:"alpha"`
	Level               string                        `json:"level"`
	SEM                 float64                       `json:"sem"`
	ConfidenceIntervals map[string]ConfidenceInterval `json:"confidenceIntervals"`
	MeetsStandard       bool                          `json:"meetsStandard"`
	ItemCount           int                           `json:"itemCount"`
}

type ValidityStatus string

const (
	ValidityValid        ValidityStatus = "Valid"
	ValidityQuestionable ValidityStatus = "Questionable"
	ValidityInvalid      ValidityStatus = "Invalid"
)

// Severity orders statuses so the worst one can be kept.
func (s ValidityStatus) Severity() int {
	switch s {
	case ValidityInvalid:
		return 2
	case ValidityQuestionable:
		return 1
	default:
		return 0
	}
}

// Worse returns the more severe of two statuses.
func (s ValidityStatus) Worse(other ValidityStatus) ValidityStatus {
	if other.Severity() > s.Severity() {
		return other
	}
	return s
}

// QualityFlag is a non-fatal data quality warning.
type QualityFlag string

const (
	FlagLowReliability       QualityFlag = "LOW_RELIABILITY"
	FlagLowDifferentiation   QualityFlag = "LOW_DIFFERENTIATION"
	FlagStraightLining       QualityFlag = "STRAIGHT_LINING"
	FlagLowConsistency       QualityFlag = "LOW_CONSISTENCY"
	FlagRapidResponding      QualityFlag = "RAPID_RESPONDING"
	FlagLowPreferenceClarity QualityFlag = "LOW_PREFERENCE_CLARITY"
	FlagNoData               QualityFlag = "NO_DATA"
)

// ValidityReport annotates a result with response-quality signals.
type ValidityReport struct {
	Status                  ValidityStatus `json:"status"`
	ResponseConsistency     float64        `json:"consistency"`
	ProfileDifferentiation  float64        `json:"differentiation"`
	Flags                   []QualityFlag  `json:"flags,omitempty"`
	StraightLinedDimensions []string       `json:"straightLinedDimensions,omitempty"`
	NoDataDimensions        []string       `json:"noDataDimensions,omitempty"`
}

// AddFlag records a flag once and downgrades the status if needed.
func (v *ValidityReport) AddFlag(flag QualityFlag, status ValidityStatus) {
	if !v.HasFlag(flag) {
		v.Flags = append(v.Flags, flag)
	}
	v.Status = v.Status.Worse(status)
}

func (v *ValidityReport) HasFlag(flag QualityFlag) bool {
	for _, f := range v.Flags {
		if f == flag {
			return true
		}
	}
	return false
}
