// test/e2e/pipeline_test.go
package e2e

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"career-assessment-workers/internal/common/aws"
	"career-assessment-workers/internal/common/config"
	"career-assessment-workers/internal/common/database"
	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/engine"
	"career-assessment-workers/internal/models"
	"career-assessment-workers/internal/reference"

	ma "career-assessment-workers/internal/workers/assessment/match-careers"
	nr "career-assessment-workers/internal/workers/assessment/notify-results"
	sa "career-assessment-workers/internal/workers/assessment/score-assessment"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The pipeline runs score-assessment for every instrument, match-careers on
// the stored results and notify-results on the ranking, against the
// reference data shipped in configs/.

type mockSES struct {
	sent []*ses.SendEmailInput
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.sent = append(m.sent, params)
	return &ses.SendEmailOutput{MessageId: awssdk.String(fmt.Sprintf("msg-%d", len(m.sent)))}, nil
}

type pipeline struct {
	cfg    *config.Config
	engine *engine.Engine
	store  *database.RedisClient
	mr     *miniredis.Miniredis
}

func setupPipeline(tb testing.TB) *pipeline {
	tb.Helper()
	tb.Setenv("ZEEBE_ADDRESS", "localhost:26500")
	tb.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := config.LoadFromFile("../../configs/config.yaml")
	require.NoError(tb, err)
	cfg.Reference.NormsPath = "../../configs/norms.yaml"
	cfg.Reference.CatalogPath = "../../configs/careers.json"

	log := logger.NewNoOpLogger()
	norms, catalog, err := reference.Load(context.Background(), cfg.Reference, reference.Sources{}, log)
	require.NoError(tb, err)

	eng, err := engine.New(cfg.Engine, norms, catalog, log)
	require.NoError(tb, err)

	mr, err := miniredis.Run()
	require.NoError(tb, err)
	tb.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tb.Cleanup(func() { client.Close() })

	return &pipeline{cfg: cfg, engine: eng, store: database.NewRedisFromClient(client), mr: mr}
}

func likert(dim string, value float64, n int) []models.RawResponse {
	out := make([]models.RawResponse, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.RawResponse{
			QuestionID:   fmt.Sprintf("%s-%d", dim, i+1),
			DimensionKey: dim,
			Value:        value,
		})
	}
	return out
}

// analyticalProfile answers every instrument as an investigative, logical
// INTP would.
func analyticalProfile() map[models.InstrumentCode][]models.RawResponse {
	profile := map[models.InstrumentCode][]models.RawResponse{}

	interest := map[string]float64{"realistic": 2, "investigative": 5, "artistic": 2, "social": 1, "enterprising": 2, "conventional": 4}
	for _, dim := range models.InterestDimensions {
		profile[models.InstrumentInterest] = append(profile[models.InstrumentInterest], likert(dim, interest[dim], 4)...)
	}

	poles := map[string]float64{"E": 1, "I": 5, "S": 2, "N": 4, "T": 5, "F": 1, "J": 2, "P": 4}
	for _, dim := range models.PersonalityDimensions {
		profile[models.InstrumentPersonality] = append(profile[models.InstrumentPersonality], likert(dim, poles[dim], 3)...)
	}

	for _, dim := range models.EmotionalDimensions {
		profile[models.InstrumentEmotional] = append(profile[models.InstrumentEmotional], likert(dim, 3, 4)...)
	}

	for _, dim := range models.IntelligenceDimensions {
		value := 2.0
		if dim == "logical_mathematical" || dim == "intrapersonal" {
			value = 5
		}
		profile[models.InstrumentIntelligences] = append(profile[models.InstrumentIntelligences], likert(dim, value, 3)...)
	}

	for _, dim := range models.AptitudeDimensions {
		correct := 0.0
		if dim != "verbal" && dim != "spatial" {
			correct = 1
		}
		profile[models.InstrumentAptitude] = append(profile[models.InstrumentAptitude], likert(dim, correct, 5)...)
	}

	for _, dim := range models.LearningStyleDimensions {
		value := 2.0
		if dim == "reading_writing" {
			value = 5
		}
		profile[models.InstrumentLearningStyle] = append(profile[models.InstrumentLearningStyle], likert(dim, value, 4)...)
	}
	return profile
}

func (p *pipeline) scoreAll(tb testing.TB, userID string) {
	tb.Helper()
	h := sa.NewHandler(sa.LoadConfig(), p.engine, p.store, logger.NewNoOpLogger())
	for _, code := range models.AllInstruments {
		output, err := h.Execute(context.Background(), &sa.Input{
			UserID:         userID,
			InstrumentCode: string(code),
			Responses:      analyticalProfile()[code],
		})
		require.NoError(tb, err, "instrument %s", code)
		require.Equal(tb, code, output.Result.Instrument)
	}
}

// ==========================
// Pipeline
// ==========================

func TestPipeline_ScoreMatchNotify(t *testing.T) {
	p := setupPipeline(t)
	p.scoreAll(t, "user-42")

	for _, code := range models.AllInstruments {
		assert.True(t, p.mr.Exists(database.ResultKey("user-42", code, 1)), "result for %s stored", code)
	}

	match := ma.NewHandler(ma.LoadConfig(), p.engine, p.store, logger.NewTestLogger(t))
	matched, err := match.Execute(context.Background(), &ma.Input{UserID: "user-42"})
	require.NoError(t, err)

	assert.Equal(t, "INTP", matched.PersonalityType)
	assert.Equal(t, "IC", matched.HollandCode[:2])
	assert.Len(t, matched.Instruments, len(models.AllInstruments))
	require.NotEmpty(t, matched.Matches)

	rank := map[string]int{}
	for i, m := range matched.Matches {
		rank[m.CareerID] = m.Rank
		assert.Equal(t, i+1, m.Rank)
		assert.GreaterOrEqual(t, m.OverallScore, p.cfg.Engine.MinMatchScore)
		if i > 0 {
			assert.LessOrEqual(t, m.OverallScore, matched.Matches[i-1].OverallScore)
		}
		assert.NotEmpty(t, m.Explanation)
	}
	require.Contains(t, rank, "data-scientist")
	if counselor, ok := rank["school-counselor"]; ok {
		assert.Less(t, rank["data-scientist"], counselor)
	}

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("user-42").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "phone"}).
			AddRow("user-42", "Grace Hopper", "grace@example.com", ""))

	mail := &mockSES{}
	notifyCfg := nr.LoadConfig()
	notify := nr.NewHandler(notifyCfg, db, aws.NewEmailSender(mail, "results@example.com"), nil, logger.NewTestLogger(t))
	sent, err := notify.Execute(context.Background(), &nr.Input{
		UserID:          "user-42",
		Matches:         matched.Matches,
		HollandCode:     matched.HollandCode,
		PersonalityType: matched.PersonalityType,
	})
	require.NoError(t, err)

	assert.Equal(t, nr.StatusSent, sent.Status)
	assert.Equal(t, "msg-1", sent.EmailMessageID)
	require.Len(t, mail.sent, 1)
	assert.Contains(t, *mail.sent[0].Message.Body.Text.Data, matched.Matches[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPipeline_RescoringIsIdempotent(t *testing.T) {
	p := setupPipeline(t)
	h := sa.NewHandler(sa.LoadConfig(), p.engine, p.store, logger.NewNoOpLogger())
	input := &sa.Input{
		UserID:         "user-7",
		InstrumentCode: "riasec",
		Responses:      analyticalProfile()[models.InstrumentInterest],
	}

	first, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Result.NormalizedScores, second.Result.NormalizedScores)
	assert.Equal(t, first.Result.Interpretation.Interest.HollandCode, second.Result.Interpretation.Interest.HollandCode)
	assert.Equal(t, 24*time.Hour, p.mr.TTL(first.ResultKey))
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkHandler_ScoreAssessment(b *testing.B) {
	p := setupPipeline(b)
	h := sa.NewHandler(sa.LoadConfig(), p.engine, nil, logger.NewNoOpLogger())
	responses := analyticalProfile()[models.InstrumentIntelligences]

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := h.Execute(context.Background(), &sa.Input{UserID: "bench", InstrumentCode: "MI", Responses: responses})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEngine_Match(b *testing.B) {
	p := setupPipeline(b)
	var results []*models.InstrumentResult
	for code, responses := range analyticalProfile() {
		result, err := p.engine.Score(models.ScoreRequest{Instrument: code, Responses: responses})
		require.NoError(b, err)
		results = append(results, result)
	}
	profile := p.engine.BuildProfile("bench", results...)
	opts := p.engine.DefaultMatchOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.engine.Match(context.Background(), profile, opts); err != nil {
			b.Fatal(err)
		}
	}
}
