package database

import (
	"context"
	"testing"

	"ai-readiness-funnel/internal/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	c := NewRedis(config.RedisConfig{Address: mr.Addr()})
	defer c.Close()
	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := config.PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "funnel", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=funnel sslmode=disable", cfg.GetDSN())

	c, err := NewPostgres(cfg)
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}
