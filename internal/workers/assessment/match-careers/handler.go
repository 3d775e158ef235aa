// internal/workers/assessment/match-careers/handler.go
package matchcareers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"career-assessment-workers/internal/common/database"
	apperrors "career-assessment-workers/internal/common/errors"
	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/common/metrics"
	"career-assessment-workers/internal/matching"
	"career-assessment-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "match-careers"
)

// Matcher is the matching side of the engine.
type Matcher interface {
	BuildProfile(userID string, results ...*models.InstrumentResult) *models.UserProfile
	Match(ctx context.Context, profile *models.UserProfile, opts matching.Options) ([]models.MatchResult, error)
	DefaultMatchOptions() matching.Options
	Strategy() string
	CatalogVersion() string
}

type Handler struct {
	config       *Config
	matcher      Matcher
	store        *database.RedisClient
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

// NewHandler wires the worker. Stored instrument results are read from store.
func NewHandler(config *Config, matcher Matcher, store *database.RedisClient, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		matcher:      matcher,
		store:        store,
		errorHandler: apperrors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || strings.TrimSpace(input.UserID) == "" {
		return nil, apperrors.NewInvalidInputError("userId is required")
	}
	if h.store == nil {
		return nil, apperrors.NewResultCacheFailedError("load", errors.New("result store not configured"))
	}

	results, err := h.loadResults(ctx, input)
	if err != nil {
		return nil, err
	}
	profile := h.matcher.BuildProfile(input.UserID, results...)
	if len(profile.Results) == 0 {
		return nil, apperrors.NewInvalidProfileError(fmt.Sprintf("no scored instruments for user %s", input.UserID))
	}

	opts := h.options(input)
	fingerprint, err := Fingerprint(profile, opts, h.matcher.Strategy(), h.matcher.CatalogVersion())
	if err != nil {
		return nil, apperrors.NewInvalidProfileError(err.Error())
	}
	key := database.MatchKey(input.UserID, fingerprint)

	var matches []models.MatchResult
	cached := false
	switch err := h.store.GetJSON(ctx, key, &matches); {
	case err == nil:
		cached = true
	case errors.Is(err, database.ErrCacheMiss):
	default:
		h.logger.Warn("match cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	metrics.ObserveCache("match", cached)

	if !cached {
		matches, err = h.matcher.Match(ctx, profile, opts)
		if err != nil {
			return nil, err
		}
		metrics.ObserveMatch(h.matcher.Strategy(), len(matches))
		if err := h.store.SetJSON(ctx, key, matches, h.config.MatchTTL); err != nil {
			h.logger.Warn("match cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}
	if matches == nil {
		matches = []models.MatchResult{}
	}

	instruments := make([]string, 0, len(profile.Results))
	for _, code := range models.AllInstruments {
		if _, ok := profile.Results[code]; ok {
			instruments = append(instruments, string(code))
		}
	}

	h.logger.Info("careers matched", map[string]interface{}{
		"userId":      input.UserID,
		"instruments": instruments,
		"matches":     len(matches),
		"cached":      cached,
	})

	return &Output{
		UserID:             input.UserID,
		Matches:            matches,
		MatchCount:         len(matches),
		Instruments:        instruments,
		PersonalityType:    profile.PersonalityType(),
		HollandCode:        profile.HollandCode(),
		ProfileFingerprint: fingerprint,
		Cached:             cached,
	}, nil
}

// loadResults reads the stored result of every instrument. Instruments the
// user has not completed are skipped.
func (h *Handler) loadResults(ctx context.Context, input *Input) ([]*models.InstrumentResult, error) {
	attempts := make(map[models.InstrumentCode]int, len(input.Attempts))
	for raw, attempt := range input.Attempts {
		code, err := models.ParseInstrumentCode(raw)
		if err != nil {
			return nil, apperrors.NewUnsupportedInstrumentError(raw)
		}
		attempts[code] = attempt
	}

	var results []*models.InstrumentResult
	for _, code := range models.AllInstruments {
		attempt := attempts[code]
		if attempt < 1 {
			attempt = 1
		}
		var result models.InstrumentResult
		err := h.store.GetJSON(ctx, database.ResultKey(input.UserID, code, attempt), &result)
		switch {
		case err == nil:
			results = append(results, &result)
		case errors.Is(err, database.ErrCacheMiss):
			h.logger.Debug("instrument not completed", map[string]interface{}{"instrument": code, "attempt": attempt})
		default:
			return nil, apperrors.NewResultCacheFailedError("load", err)
		}
	}
	return results, nil
}

func (h *Handler) options(input *Input) matching.Options {
	opts := h.matcher.DefaultMatchOptions()
	if input.TopN != nil {
		opts.TopN = *input.TopN
	}
	if input.MinScore != nil {
		opts.MinScore = *input.MinScore
	}
	if len(input.Categories) > 0 {
		opts.Categories = input.Categories
	}
	return opts
}

// Fingerprint derives a stable id from the matchable part of a profile, the
// match options and the catalog version, so a reloaded catalog misses the
// cache.
func Fingerprint(profile *models.UserProfile, opts matching.Options, strategy, catalogVersion string) (string, error) {
	vectors := make(map[string]map[string]float64, len(profile.Results))
	for code := range profile.Results {
		vectors[string(code)] = profile.Vector(code)
	}
	data, err := json.Marshal(struct {
		Vectors     map[string]map[string]float64 `json:"v"`
		Personality string                        `json:"p"`
		Options     matching.Options              `json:"o"`
		Strategy    string                        `json:"s"`
		Catalog     string                        `json:"c"`
	}{vectors, profile.PersonalityType(), opts, strategy, catalogVersion})
	if err != nil {
		return "", err
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, data).String(), nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
