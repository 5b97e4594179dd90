// internal/workers/scheme/fetch-predictions/config.go
package fetchpredictions

import "time"

type Config struct {
	Timeout time.Duration
	// FallbackToEngine answers from the local rule engine when the predictor
	// cannot be reached.
	FallbackToEngine bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:          45 * time.Second,
		FallbackToEngine: true,
	}
}
