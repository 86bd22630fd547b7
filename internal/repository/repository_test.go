package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/customer-desk/internal/config"
	"github.com/msomdec/customer-desk/internal/repository"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := config.Default()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "open.db")

	db, err := repository.Open(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate(context.Background()))
	assert.NoError(t, db.Ping(context.Background()))
	assert.NotNil(t, db.Customers())
	assert.NotNil(t, db.Users())
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.DBDriver = "oracle"

	db, err := repository.Open(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, db)
}
