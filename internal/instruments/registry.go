// internal/instruments/registry.go
package instruments

import (
	apperrors "career-assessment-workers/internal/common/errors"
	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/models"
	"career-assessment-workers/internal/psychometrics"
)

// Options tunes the instruments that carry configurable constants.
type Options struct {
	AptitudeWeights map[string]float64
	IQTransform     IQTransform
}

// Registry dispatches scoring requests by instrument code.
type Registry struct {
	scorers map[models.InstrumentCode]Scorer
}

// NewRegistry indexes the given scorers; a later scorer replaces an earlier
// one for the same code.
func NewRegistry(scorers ...Scorer) *Registry {
	r := &Registry{scorers: make(map[models.InstrumentCode]Scorer, len(scorers))}
	for _, s := range scorers {
		r.scorers[s.Instrument()] = s
	}
	return r
}

// NewDefaultRegistry wires all six instruments against one standardizer.
func NewDefaultRegistry(std *psychometrics.Standardizer, opts Options, log logger.Logger) *Registry {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return NewRegistry(
		NewInterestScorer(std, log),
		NewPersonalityScorer(std, log),
		NewEmotionalScorer(std, log),
		NewIntelligencesScorer(std, log),
		NewAptitudeScorer(std, opts.AptitudeWeights, opts.IQTransform, log),
		NewLearningStyleScorer(std, log),
	)
}

// Get returns the scorer for a code or UNSUPPORTED_INSTRUMENT.
func (r *Registry) Get(code models.InstrumentCode) (Scorer, error) {
	s, ok := r.scorers[code]
	if !ok {
		return nil, apperrors.NewUnsupportedInstrumentError(string(code))
	}
	return s, nil
}

// Score resolves the instrument and scores the request.
func (r *Registry) Score(req models.ScoreRequest) (*models.InstrumentResult, error) {
	s, err := r.Get(req.Instrument)
	if err != nil {
		return nil, err
	}
	return s.Score(req)
}

// Codes lists registered instruments in presentation order.
func (r *Registry) Codes() []models.InstrumentCode {
	codes := make([]models.InstrumentCode, 0, len(r.scorers))
	for _, c := range models.AllInstruments {
		if _, ok := r.scorers[c]; ok {
			codes = append(codes, c)
		}
	}
	return codes
}

func newPipeline(code models.InstrumentCode, std *psychometrics.Standardizer, interp interpreter, log logger.Logger) *pipeline {
	return &pipeline{
		code:         code,
		scaleMax:     psychometrics.DefaultScaleMax,
		standardizer: std,
		interp:       interp,
		logger:       log.WithFields(map[string]interface{}{"instrument": string(code)}),
	}
}
