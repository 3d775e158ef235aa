// internal/workers/assessment/score-assessment/models.go
package scoreassessment

import "career-assessment-workers/internal/models"

type Input struct {
	UserID         string               `json:"userId"`
	Attempt        int                  `json:"attempt,omitempty"`
	InstrumentCode string               `json:"instrumentCode"`
	Responses      []models.RawResponse `json:"responses"`
	Demographics   models.Demographics  `json:"demographics,omitempty"`
}

type Output struct {
	UserID         string                `json:"userId"`
	InstrumentCode string                `json:"instrumentCode"`
	Attempt        int                   `json:"attempt"`
	ResultKey      string                `json:"resultKey"`
	ValidityStatus string                `json:"validityStatus"`
	Cached         bool                  `json:"cached"`
	Result         *models.ScoringOutput `json:"result"`
}

const inputSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["userId", "instrumentCode", "responses"],
  "properties": {
    "userId": {"type": "string", "minLength": 1},
    "attempt": {"type": "integer", "minimum": 1},
    "instrumentCode": {"type": "string", "minLength": 1},
    "responses": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["dimensionKey"],
        "properties": {
          "questionId": {"type": "string"},
          "dimensionKey": {"type": "string", "minLength": 1},
          "value": {"type": "number"},
          "reverseScored": {"type": "boolean"},
          "weight": {"type": "number", "minimum": 0},
          "maxValue": {"type": "number", "exclusiveMinimum": 0},
          "skipped": {"type": "boolean"},
          "responseTimeMs": {"type": "integer", "minimum": 0}
        },
        "anyOf": [
          {"required": ["value"]},
          {"required": ["skipped"], "properties": {"skipped": {"const": true}}}
        ]
      }
    },
    "demographics": {
      "type": "object",
      "properties": {
        "ageGroup": {"type": "string"},
        "region": {"type": "string"}
      }
    }
  }
}`
