package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itissulav/Kharcha/config"
)

func TestNewConnection_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:          DriverSQLite,
		SQLitePath:      filepath.Join(t.TempDir(), "nested", "kharcha.db"),
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}

	database, err := NewConnection(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	assert.NoError(t, database.Ping(context.Background()))

	var foreignKeys int
	require.NoError(t, database.DB().Raw("PRAGMA foreign_keys").Scan(&foreignKeys).Error)
	assert.Equal(t, 1, foreignKeys)
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{Driver: "mysql"})

	assert.ErrorContains(t, err, `unsupported database driver "mysql"`)
}
