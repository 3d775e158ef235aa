// internal/workers/assessment/match-careers/config.go
package matchcareers

import "time"

type Config struct {
	Timeout  time.Duration
	MatchTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  30 * time.Second,
		MatchTTL: time.Hour,
	}
}
