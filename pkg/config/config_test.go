package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/armazem-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Ledger.OperationTimeout)
	assert.Equal(t, 5, cfg.HTTP.LoginRateLimitMax)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("LEDGER_OPERATION_TIMEOUT", "750ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.local, ,http://b.local")
	t.Setenv("DB_MAX_CONNS", "7")
	t.Setenv("AUTO_MIGRATE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 750*time.Millisecond, cfg.Ledger.OperationTimeout)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 7, cfg.DB.MaxConns)
	assert.True(t, cfg.Store.AutoMigrate)
}

func TestLoad_Invalido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LEDGER_OPERATION_TIMEOUT", "pronto")
	_, err = config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "armazem", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/armazem?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
