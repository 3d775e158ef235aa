// internal/workers/assessment/score-assessment/config.go
package scoreassessment

import "time"

type Config struct {
	Timeout   time.Duration
	ResultTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:   10 * time.Second,
		ResultTTL: 24 * time.Hour,
	}
}
