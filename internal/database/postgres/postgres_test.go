package postgres

import (
	"testing"
	"time"

	"agrisoil-backend/internal/config"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func testConfig() config.PostgresConfig {
	return config.PostgresConfig{
		Host:     "localhost",
		Port:     "5432",
		Username: "postgres",
		Password: "postgres",
		DBname:   "agrisoil_test",
	}
}

func TestConnectionLostWithNilHandle(t *testing.T) {
	// The initial connect can fail outright, leaving the caller with a
	// nil handle that the retry loop must tolerate.
	var db *sqlx.DB
	assert.True(t, connectionLost(db))
}

func TestRetryAbortsWhenConnectionHealthy(t *testing.T) {
	DB_Status = true
	defer func() { DB_Status = false }()

	var db *sqlx.DB
	assert.NotPanics(t, func() {
		RetryConnectOnFailed(time.Millisecond, &db, testConfig())
	})
}
