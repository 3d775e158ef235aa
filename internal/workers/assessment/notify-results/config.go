// internal/workers/assessment/notify-results/config.go
package notifyresults

import "time"

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	// SummarySize is how many matches the email lists.
	SummarySize int
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		EmailEnabled: true,
		SummarySize:  5,
		Timeout:      30 * time.Second,
	}
}
