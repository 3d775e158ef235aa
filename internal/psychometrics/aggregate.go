// internal/psychometrics/aggregate.go
package psychometrics

import (
	"fmt"
	"sort"
	"strings"

	apperrors "career-assessment-workers/internal/common/errors"
	"career-assessment-workers/internal/models"
)

// DefaultScaleMax is the top of the common 1-5 Likert scale.
const DefaultScaleMax = 5.0

// MaxDetector infers an item's maximum from its value when no explicit
// max_value is supplied.
type MaxDetector func(value float64) float64

// MixedItemMaxDetector treats values above 1 as 3-point items and the rest
// as binary items.
func MixedItemMaxDetector(value float64) float64 {
	if value > 1 {
		return 3
	}
	return 1
}

// AggregateOptions configures one aggregation run.
type AggregateOptions struct {
	ScaleMax    float64
	Dimensions  []string
	MaxDetector MaxDetector
	// AllowExtra accepts dimension keys outside Dimensions instead of
	// rejecting the submission. They are keyed by their lowercased name.
	AllowExtra bool
}

// Aggregate groups answered responses by dimension, applying reverse scoring
// and item weights. Every declared dimension is present in the result, even
// when nothing was answered for it. Items weighted 0 are left out like
// skipped ones.
func Aggregate(responses []models.RawResponse, opts AggregateOptions) (map[string]*models.DimensionAggregate, error) {
	scaleMax := opts.ScaleMax
	if scaleMax <= 0 {
		scaleMax = DefaultScaleMax
	}

	canonical := make(map[string]string, len(opts.Dimensions))
	out := make(map[string]*models.DimensionAggregate, len(opts.Dimensions))
	for _, dim := range opts.Dimensions {
		canonical[strings.ToLower(dim)] = dim
		out[dim] = &models.DimensionAggregate{Dimension: dim, ItemValues: []float64{}}
	}

	for i, r := range responses {
		if r.Skipped {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(r.DimensionKey))
		dim, ok := canonical[key]
		switch {
		case ok:
		case opts.AllowExtra && key != "":
			dim = key
			canonical[key] = dim
			out[dim] = &models.DimensionAggregate{Dimension: dim, ItemValues: []float64{}}
		default:
			return nil, apperrors.NewInvalidResponsesError(
				fmt.Sprintf("response %d (%s): unknown dimension %q", i, r.QuestionID, r.DimensionKey))
		}

		w := r.EffectiveWeight()
		if !IsFinite(r.Value) || !IsFinite(w) {
			return nil, apperrors.NewInvalidResponsesError(
				fmt.Sprintf("response %d (%s): value must be a finite number", i, r.QuestionID))
		}
		if w < 0 {
			return nil, apperrors.NewInvalidResponsesError(
				fmt.Sprintf("response %d (%s): weight must not be negative", i, r.QuestionID))
		}
		if w == 0 {
			continue
		}

		value := r.Value
		if r.ReverseScored {
			value = ReverseScore(value, scaleMax)
		}

		itemMax := scaleMax
		switch {
		case r.MaxValue != nil && *r.MaxValue > 0:
			itemMax = *r.MaxValue
		case opts.MaxDetector != nil:
			itemMax = opts.MaxDetector(r.Value)
		}

		agg := out[dim]
		agg.Sum += value * w
		agg.MaxPossible += itemMax * w
		agg.ItemCount++
		agg.ItemValues = append(agg.ItemValues, value)
	}

	return out, nil
}

// ExtraDimensions lists the aggregated dimensions missing from declared,
// sorted by name.
func ExtraDimensions(aggs map[string]*models.DimensionAggregate, declared []string) []string {
	known := make(map[string]bool, len(declared))
	for _, dim := range declared {
		known[dim] = true
	}
	var extra []string
	for dim := range aggs {
		if !known[dim] {
			extra = append(extra, dim)
		}
	}
	sort.Strings(extra)
	return extra
}

// ReverseScore mirrors a value on a 1..scaleMax scale.
func ReverseScore(value, scaleMax float64) float64 {
	return (scaleMax + 1) - value
}

// ItemGroups returns the answered item values per dimension in declaration
// order, skipping dimensions without data.
func ItemGroups(aggs map[string]*models.DimensionAggregate, order []string) [][]float64 {
	groups := make([][]float64, 0, len(order))
	for _, dim := range order {
		agg := aggs[dim]
		if !agg.HasData() {
			continue
		}
		groups = append(groups, agg.ItemValues)
	}
	return groups
}
