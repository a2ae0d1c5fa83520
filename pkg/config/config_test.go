package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "DB_PATH", "IMPORT_FILE", "JOB_SCHEDULE", "JOB_WORK_DURATION", "SERVICE_NAME", "METRICS_PREFIX"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "storecatalog", cfg.ServiceName)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "db.sqlite3", cfg.DB.GetDSN())
	assert.Equal(t, "stores.json", cfg.Import.File)
	assert.Equal(t, "@every 1m", cfg.Job.Schedule)
	assert.Equal(t, 70*time.Second, cfg.Job.WorkDuration)
	assert.Equal(t, "storecatalog", cfg.Metrics.Prefix)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverPostgres)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "catalog")
	t.Setenv("DB_SSL_MODE", "require")
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("JOB_WORK_DURATION", "5s")
	t.Setenv("IMPORT_FILE", "seed.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "host=db port=6543 user=app password=secret dbname=catalog sslmode=require", cfg.DB.GetDSN())
	assert.Equal(t, logger.Silent, cfg.DB.LogLevel)
	assert.Equal(t, 7, cfg.DB.MaxOpenConns)
	assert.Equal(t, 5*time.Second, cfg.Job.WorkDuration)
	assert.Equal(t, "seed.json", cfg.Import.File)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("DB_PATH", "db.sqlite3")
	t.Setenv("IMPORT_FILE", "stores.json")
	t.Setenv("DB_MAX_IDLE_CONNS", "many")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.DB.MaxIdleConns)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite ok", Config{DB: DBConfig{Driver: DriverSQLite, Path: "x.db"}, Import: ImportConfig{File: "s.json"}}, false},
		{"postgres ok", Config{DB: DBConfig{Driver: DriverPostgres}, Import: ImportConfig{File: "s.json"}}, false},
		{"sqlite without path", Config{DB: DBConfig{Driver: DriverSQLite}, Import: ImportConfig{File: "s.json"}}, true},
		{"unknown driver", Config{DB: DBConfig{Driver: "oracle"}, Import: ImportConfig{File: "s.json"}}, true},
		{"empty import file", Config{DB: DBConfig{Driver: DriverSQLite, Path: "x.db"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
