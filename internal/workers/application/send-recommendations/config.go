// internal/workers/application/send-recommendations/config.go
package sendrecommendations

import "time"

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	// SMSNames caps how many scheme names the SMS summary lists.
	SMSNames int
	Timeout  time.Duration
}

func LoadConfig() *Config {
	return &Config{
		EmailEnabled: true,
		SMSEnabled:   true,
		SMSNames:     3,
		Timeout:      30 * time.Second,
	}
}
