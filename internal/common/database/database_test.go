// internal/common/database/database_test.go
package database

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"career-assessment-workers/internal/common/config"
	"career-assessment-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedResult struct {
	UserID string  `json:"userId"`
	Score  float64 `json:"score"`
}

func setupRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisFromClient(client), mr
}

// ==========================
// Redis
// ==========================

func TestRedis_JSONRoundTrip(t *testing.T) {
	rc, mr := setupRedis(t)
	ctx := context.Background()
	key := ResultKey("user-1", models.InstrumentInterest, 2)

	require.NoError(t, rc.SetJSON(ctx, key, cachedResult{UserID: "user-1", Score: 72.5}, time.Hour))
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))

	var got cachedResult
	require.NoError(t, rc.GetJSON(ctx, key, &got))
	assert.Equal(t, 72.5, got.Score)

	require.NoError(t, rc.Del(ctx, key))
	assert.ErrorIs(t, rc.GetJSON(ctx, key, &got), ErrCacheMiss)
}

func TestRedis_GetJSONCorrupt(t *testing.T) {
	rc, mr := setupRedis(t)
	require.NoError(t, mr.Set("bad", "{not json"))

	var got cachedResult
	err := rc.GetJSON(context.Background(), "bad", &got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestRedis_Mocked(t *testing.T) {
	client, mock := redismock.NewClientMock()
	rc := NewRedisFromClient(client)
	ctx := context.Background()

	mock.ExpectGet("k").SetErr(errors.New("connection refused"))
	err := rc.GetJSON(ctx, "k", &cachedResult{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	mock.ExpectSet("k", []byte(`{"userId":"u","score":1}`), time.Minute).SetErr(errors.New("READONLY"))
	err = rc.SetJSON(ctx, "k", cachedResult{UserID: "u", Score: 1}, time.Minute)
	require.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "assessment:result:u-9:MBTI:1", ResultKey("u-9", models.InstrumentPersonality, 1))
	assert.Equal(t, "assessment:match:u-9:abc123", MatchKey("u-9", "abc123"))
}

func TestNewRedis_RequiresAddress(t *testing.T) {
	_, err := NewRedis(config.RedisConfig{})
	assert.Error(t, err)
}

// ==========================
// PostgreSQL
// ==========================

func TestPostgres_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	pg := NewPostgresFromDB(db)

	mock.ExpectPing()
	assert.NoError(t, pg.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("no route to host"))
	assert.Error(t, pg.Ping(context.Background()))

	mock.ExpectClose()
	assert.NoError(t, pg.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Elasticsearch
// ==========================

func TestElasticsearch_IndexExists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		switch r.URL.Path {
		case "/careers":
			w.WriteHeader(http.StatusOK)
		case "/":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	es, err := NewElasticsearch(config.ElasticsearchConfig{URL: server.URL})
	require.NoError(t, err)

	ok, err := es.IndexExists(context.Background(), "careers")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = es.IndexExists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, es.Ping(context.Background()))
}
