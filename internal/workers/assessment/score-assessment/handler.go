// internal/workers/assessment/score-assessment/handler.go
package scoreassessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"career-assessment-workers/internal/common/database"
	apperrors "career-assessment-workers/internal/common/errors"
	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/common/metrics"
	"career-assessment-workers/internal/common/validation"
	"career-assessment-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "score-assessment"
)

var schema = validation.MustCompileSchema(inputSchema)

// Scorer is the scoring side of the engine.
type Scorer interface {
	Score(req models.ScoreRequest) (*models.InstrumentResult, error)
}

type Handler struct {
	config       *Config
	scorer       Scorer
	cache        *database.RedisClient
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

// NewHandler wires the worker. cache may be nil, in which case every job
// is scored afresh and nothing is stored.
func NewHandler(config *Config, scorer Scorer, cache *database.RedisClient, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		scorer:       scorer,
		cache:        cache,
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

	input, err := h.parseInput(job.Variables)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) parseInput(variables string) (*Input, error) {
	result, err := schema.ValidateJSON([]byte(variables))
	if err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}
	if !result.Valid {
		return nil, apperrors.NewInvalidInputError(result.Error())
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidInputError("input cannot be nil")
	}
	code, err := models.ParseInstrumentCode(input.InstrumentCode)
	if err != nil {
		return nil, apperrors.NewUnsupportedInstrumentError(input.InstrumentCode)
	}
	attempt := input.Attempt
	if attempt < 1 {
		attempt = 1
	}
	key := database.ResultKey(input.UserID, code, attempt)

	if cached, ok := h.lookup(ctx, key); ok {
		return h.buildOutput(input.UserID, attempt, key, cached, true), nil
	}

	start := time.Now()
	result, err := h.scorer.Score(models.ScoreRequest{
		Instrument:   code,
		Responses:    input.Responses,
		Demographics: input.Demographics,
	})
	if err != nil {
		return nil, err
	}
	metrics.ObserveScoring(string(code), string(result.Validity.Status), time.Since(start))

	if h.cache != nil {
		if err := h.cache.SetJSON(ctx, key, result, h.config.ResultTTL); err != nil {
			return nil, apperrors.NewResultCacheFailedError("store", err)
		}
	}

	h.logger.Info("assessment scored", map[string]interface{}{
		"userId":     input.UserID,
		"instrument": code,
		"attempt":    attempt,
		"validity":   result.Validity.Status,
		"alpha":      result.Reliability.CronbachAlpha,
	})

	return h.buildOutput(input.UserID, attempt, key, result, false), nil
}

// lookup returns a stored result for an already scored attempt. Read
// failures fall through to scoring.
func (h *Handler) lookup(ctx context.Context, key string) (*models.InstrumentResult, bool) {
	if h.cache == nil {
		return nil, false
	}
	var result models.InstrumentResult
	err := h.cache.GetJSON(ctx, key, &result)
	if err == nil {
		metrics.ObserveCache("result", true)
		h.logger.Debug("returning stored result", map[string]interface{}{"resultKey": key})
		return &result, true
	}
	metrics.ObserveCache("result", false)
	if !errors.Is(err, database.ErrCacheMiss) {
		h.logger.Warn("result cache read failed", map[string]interface{}{
			"resultKey": key,
			"error":     err.Error(),
		})
	}
	return nil, false
}

func (h *Handler) buildOutput(userID string, attempt int, key string, result *models.InstrumentResult, cached bool) *Output {
	out := result.Output()
	return &Output{
		UserID:         userID,
		InstrumentCode: string(result.Instrument),
		Attempt:        attempt,
		ResultKey:      key,
		ValidityStatus: string(result.Validity.Status),
		Cached:         cached,
		Result:         &out,
	}
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

// Execute runs the job logic without a Zeebe client.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// ParseInput validates and decodes raw job variables.
func (h *Handler) ParseInput(variables string) (*Input, error) {
	return h.parseInput(variables)
}
