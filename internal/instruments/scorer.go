// internal/instruments/scorer.go
package instruments

import (
	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/models"
	"career-assessment-workers/internal/psychometrics"
)

// Scorer turns one instrument attempt into a scored, interpreted result.
type Scorer interface {
	Instrument() models.InstrumentCode
	Score(req models.ScoreRequest) (*models.InstrumentResult, error)
}

// interpreter produces the categorical output of one instrument and may
// add instrument-specific validity flags.
type interpreter interface {
	interpret(a *attempt) models.Interpretation
}

// attempt is the intermediate state of one scoring run.
type attempt struct {
	code       models.InstrumentCode
	order      []string
	aggregates map[string]*models.DimensionAggregate
	scores     map[string]models.DimensionScore
	validity   *models.ValidityReport
}

func (a *attempt) score(dim string) models.DimensionScore {
	return a.scores[dim]
}

// pipeline runs aggregation, normalization, standardization and the
// reliability/validity analysis shared by every instrument.
type pipeline struct {
	code         models.InstrumentCode
	scaleMax     float64
	maxDetector  psychometrics.MaxDetector
	pairShares   bool
	extraDims    bool
	standardizer *psychometrics.Standardizer
	interp       interpreter
	logger       logger.Logger
}

func (p *pipeline) Instrument() models.InstrumentCode {
	return p.code
}

func (p *pipeline) Score(req models.ScoreRequest) (*models.InstrumentResult, error) {
	order := p.code.Dimensions()

	aggs, err := psychometrics.Aggregate(req.Responses, psychometrics.AggregateOptions{
		ScaleMax:    p.scaleMax,
		Dimensions:  order,
		MaxDetector: p.maxDetector,
		AllowExtra:  p.extraDims,
	})
	if err != nil {
		return nil, err
	}
	if p.extraDims {
		extra := psychometrics.ExtraDimensions(aggs, order)
		order = append(append(make([]string, 0, len(order)+len(extra)), order...), extra...)
	}

	scores := make(map[string]models.DimensionScore, len(order))
	for i, dim := range order {
		agg := aggs[dim]
		s := models.DimensionScore{
			RawScore:   psychometrics.Round(agg.Sum, 3),
			RawAverage: psychometrics.Round(psychometrics.RawAverage(agg), 3),
			ItemCount:  agg.ItemCount,
		}
		if p.pairShares {
			s.Normalized, s.NoData = pairShare(aggs, order, i)
		} else {
			s.Normalized, s.NoData = psychometrics.Normalize(agg)
		}
		p.standardizer.Standardize(p.code, dim, req.Demographics, &s)
		scores[dim] = s
	}

	reliability := psychometrics.AnalyzeReliability(aggs, scores, order)
	validity := psychometrics.AnalyzeValidity(psychometrics.ValidityInput{
		Aggregates: aggs,
		Scores:     scores,
		Order:      order,
		Responses:  req.Responses,
		Alpha:      reliability.CronbachAlpha,
	})

	a := &attempt{
		code:       p.code,
		order:      order,
		aggregates: aggs,
		scores:     scores,
		validity:   &validity,
	}
	interpretation := p.interp.interpret(a)

	result := &models.InstrumentResult{
		Instrument:     p.code,
		DimensionOrder: append([]string(nil), order...),
		Dimensions:     scores,
		Interpretation: interpretation,
		Reliability:    reliability,
		Validity:       validity,
	}

	fields := map[string]interface{}{
		"responses": len(req.Responses),
		"alpha":     reliability.CronbachAlpha,
		"validity":  validity.Status,
	}
	if validity.Status != models.ValidityValid {
		fields["flags"] = validity.Flags
		p.logger.Warn("scored with data quality flags", fields)
	} else {
		p.logger.Debug("scored instrument", fields)
	}

	return result, nil
}

// pairShare normalizes a pole against its adjacent opposite pole.
func pairShare(aggs map[string]*models.DimensionAggregate, order []string, i int) (float64, bool) {
	j := i + 1
	if i%2 == 1 {
		j = i - 1
	}
	pole, opposite := aggs[order[i]], aggs[order[j]]
	if !pole.HasData() && !opposite.HasData() {
		return psychometrics.NeutralScore, true
	}
	return psychometrics.PoleShare(pole.Sum, opposite.Sum), false
}
