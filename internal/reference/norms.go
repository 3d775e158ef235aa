// internal/reference/norms.go
package reference

import (
	"fmt"
	"math"
	"strings"

	apperrors "career-assessment-workers/internal/common/errors"
	"career-assessment-workers/internal/models"
)

// NormEntry is one row of normative data. Empty AgeGroup or Region means
// the entry applies to any subgroup.
type NormEntry struct {
	Instrument models.InstrumentCode `json:"instrument" yaml:"instrument"`
	Dimension  string                `json:"dimension" yaml:"dimension"`
	AgeGroup   string                `json:"ageGroup,omitempty" yaml:"age_group,omitempty"`
	Region     string                `json:"region,omitempty" yaml:"region,omitempty"`
	Mean       float64               `json:"mean" yaml:"mean"`
	StdDev     float64               `json:"stdDev" yaml:"std_dev"`
	Basis      models.NormBasis      `json:"basis,omitempty" yaml:"basis,omitempty"`
}

// NormTable is an immutable index of normative data.
type NormTable struct {
	entries map[string]models.Norm
}

// NewNormTable validates and indexes entries. A duplicate key keeps the
// last entry.
func NewNormTable(entries []NormEntry) (*NormTable, error) {
	t := &NormTable{entries: make(map[string]models.Norm, len(entries))}
	for i, e := range entries {
		if e.Dimension == "" || e.Instrument == "" {
			return nil, apperrors.NewInvalidNormsError(fmt.Sprintf("entry %d: instrument and dimension are required", i))
		}
		code, err := models.ParseInstrumentCode(string(e.Instrument))
		if err != nil {
			return nil, apperrors.NewInvalidNormsError(fmt.Sprintf("entry %d: %v", i, err))
		}
		if math.IsNaN(e.Mean) || math.IsInf(e.Mean, 0) || math.IsNaN(e.StdDev) || e.StdDev < 0 {
			return nil, apperrors.NewInvalidNormsError(fmt.Sprintf("entry %d (%s/%s): mean must be finite and std_dev non-negative", i, e.Instrument, e.Dimension))
		}
		basis := e.Basis
		switch basis {
		case "":
			basis = models.NormBasisNormalized
		case models.NormBasisNormalized, models.NormBasisRawAverage:
		default:
			return nil, apperrors.NewInvalidNormsError(fmt.Sprintf("entry %d: unknown basis %q", i, e.Basis))
		}
		t.entries[normKey(code, e.Dimension, e.AgeGroup, e.Region)] = models.Norm{
			Mean:   e.Mean,
			StdDev: e.StdDev,
			Basis:  basis,
		}
	}
	return t, nil
}

// EmptyNormTable resolves every lookup to the default norm.
func EmptyNormTable() *NormTable {
	return &NormTable{entries: map[string]models.Norm{}}
}

// Lookup walks from the most to the least specific subgroup:
// (age, region), (age), (region), (any).
func (t *NormTable) Lookup(instrument models.InstrumentCode, dimension string, demo models.Demographics) (models.Norm, bool) {
	if t == nil {
		return models.Norm{}, false
	}
	candidates := [][2]string{
		{demo.AgeGroup, demo.Region},
		{demo.AgeGroup, ""},
		{"", demo.Region},
		{"", ""},
	}
	for _, c := range candidates {
		if n, ok := t.entries[normKey(instrument, dimension, c[0], c[1])]; ok {
			return n, true
		}
	}
	return models.Norm{}, false
}

func (t *NormTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

func normKey(instrument models.InstrumentCode, dimension, ageGroup, region string) string {
	return strings.Join([]string{
		strings.ToUpper(string(instrument)),
		strings.ToLower(strings.TrimSpace(dimension)),
		strings.ToLower(strings.TrimSpace(ageGroup)),
		strings.ToLower(strings.TrimSpace(region)),
	}, "|")
}
