// internal/models/response.go
package models

// RawResponse is one answered (or skipped) question of an instrument attempt.
type RawResponse struct {
	QuestionID     string   `json:"questionId"`
	DimensionKey   string   `json:"dimensionKey"`
	Value          float64  `json:"value"`
	ReverseScored  bool     `json:"reverseScored,omitempty"`
	Weight         *float64 `json:"weight,omitempty"`
	MaxValue       *float64 `json:"maxValue,omitempty"`
	Skipped        bool     `json:"skipped,omitempty"`
	ResponseTimeMs int      `json:"responseTimeMs,omitempty"`
}

// EffectiveWeight returns the item weight, defaulting to 1.0 when unset.
// An explicit 0 is kept.
func (r RawResponse) EffectiveWeight() float64 {
	if r.Weight == nil {
		return 1.0
	}
	return *r.Weight
}

// DimensionAggregate is the per-dimension accumulation of one scoring run.
type DimensionAggregate struct {
	Dimension   string    `json:"dimension"`
	Sum         float64   `json:"sum"`
	ItemCount   int       `json:"itemCount"`
	ItemValues  []float64 `json:"itemValues"`
	MaxPossible float64   `json:"maxPossible"`
}

// HasData reports whether any answered item contributed to the dimension.
func (a *DimensionAggregate) HasData() bool {
	return a != nil && a.ItemCount > 0
}

// ScoreRequest is the scoring input contract.
type ScoreRequest struct {
	Instrument   InstrumentCode `json:"instrumentCode"`
	Responses    []RawResponse  `json:"responses"`
	Demographics Demographics   `json:"demographics"`
}
