package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suteetoe/storecatalog/pkg/config"
)

type widget struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

func TestOpen_SQLiteFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.sqlite3")

	db, err := Open(&config.DBConfig{Driver: config.DriverSQLite, Path: path, MaxOpenConns: 1})
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Ping(ctx, db))
	require.NoError(t, MigrateModels(ctx, db, &widget{}))

	require.NoError(t, db.Create(&widget{Name: "a"}).Error)
	assert.Error(t, db.Create(&widget{Name: "a"}).Error, "unique index must reject duplicates")

	var count int64
	require.NoError(t, db.Model(&widget{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestOpen_SQLiteUsesSingleConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.sqlite3")

	db, err := Open(&config.DBConfig{Driver: config.DriverSQLite, Path: path, MaxOpenConns: 100, MaxIdleConns: 10})
	require.NoError(t, err)
	defer Close(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestMigrateModels_NilDB(t *testing.T) {
	assert.Error(t, MigrateModels(context.Background(), nil, &widget{}))
}

func TestClose_ThenPingFails(t *testing.T) {
	db, err := Open(&config.DBConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, Close(db))
	assert.Error(t, Ping(context.Background(), db))
}
