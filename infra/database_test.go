package infra

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-ticketing-service/config"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "tickets.db?_foreign_keys=on", SQLiteDSN("tickets.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", SQLiteDSN("file:x?mode=memory"))
}

func TestInitDatabaseClient_SQLiteEnforcesForeignKeys(t *testing.T) {
	cfg := &config.EnvConfig{}
	cfg.Database.Driver = "sqlite"
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "tickets.db")

	client, err := InitDatabaseClient(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	var enabled int
	require.NoError(t, client.DB.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}

func TestInitDatabaseClient_UnknownDriver(t *testing.T) {
	cfg := &config.EnvConfig{}
	cfg.Database.Driver = "oracle"

	_, err := InitDatabaseClient(cfg)
	assert.Error(t, err)
}
