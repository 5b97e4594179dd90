// internal/workers/scheme/validate-profile/config.go
package validateprofile

import "time"

type Config struct {
	Timeout time.Duration
	// Persist stores the normalized profile when the job carries a citizenId.
	Persist bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
		Persist: true,
	}
}
