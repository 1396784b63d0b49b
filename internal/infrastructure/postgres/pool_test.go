package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/armazem-api/pkg/config"
)

func TestPoolConfig_DesdeCampos(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		Host: "db.local", Port: 5433, User: "armazem", Password: "p@ss", DBName: "armazem", SSLMode: "disable",
		MaxConns: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "db.local", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss", pc.ConnConfig.Password)
	assert.Equal(t, int32(8), pc.MaxConns)
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_DatabaseURLYDefaults(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		DatabaseURL: "postgres://u:p@pg:5432/armazem?sslmode=disable",
		Host:        "ignorado",
	})
	require.NoError(t, err)
	assert.Equal(t, "pg", pc.ConnConfig.Host)
	assert.Equal(t, int32(defaultMaxConns), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@pg:notaport/db"})
	assert.Error(t, err)
}
