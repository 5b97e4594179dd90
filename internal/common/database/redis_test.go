package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-finder/internal/common/config"
)

func TestRedisOptions(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.RedisConfig
		addr     string
		password string
		db       int
		wantErr  bool
	}{
		{
			name: "host and port",
			cfg:  config.RedisConfig{Address: "localhost:6379", DB: 2, PoolSize: 10},
			addr: "localhost:6379",
			db:   2,
		},
		{
			name:     "url carries password and db",
			cfg:      config.RedisConfig{Address: "redis://:secret@cache:6380/3"},
			addr:     "cache:6380",
			password: "secret",
			db:       3,
		},
		{
			name:     "explicit settings win over url",
			cfg:      config.RedisConfig{Address: "redis://:secret@cache:6380/3", Password: "override", DB: 5},
			addr:     "cache:6380",
			password: "override",
			db:       5,
		},
		{
			name:    "malformed url",
			cfg:     config.RedisConfig{Address: "redis://cache:notaport"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := redisOptions(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.addr, opts.Addr)
			assert.Equal(t, tt.password, opts.Password)
			assert.Equal(t, tt.db, opts.DB)
			assert.Equal(t, tt.cfg.PoolSize, opts.PoolSize)
		})
	}
}

func TestRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()))

	mr.Close()
	assert.Error(t, client.Ping(context.Background()))
}
