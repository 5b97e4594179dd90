// internal/workers/scheme/recommend-schemes/config.go
package recommendschemes

import "time"

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  30 * time.Second,
		CacheTTL: 10 * time.Minute,
	}
}
