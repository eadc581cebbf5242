package database

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useMigrations(t *testing.T, files fstest.MapFS) {
	t.Helper()
	origFS, origDir := MigrationsFS, MigrationsDir
	MigrationsFS, MigrationsDir = files, "."
	t.Cleanup(func() { MigrationsFS, MigrationsDir = origFS, origDir })
}

var widgetMigrations = fstest.MapFS{
	"20260101_000000_widgets.up.sql":   {Data: []byte("CREATE TABLE widgets (id TEXT PRIMARY KEY);")},
	"20260101_000000_widgets.down.sql": {Data: []byte("DROP TABLE widgets;")},
	"20260102_000000_gadgets.up.sql":   {Data: []byte("CREATE TABLE gadgets (id TEXT PRIMARY KEY);")},
	"README.md":                        {Data: []byte("not a migration")},
	"20260103_000000_orphan.down.sql":  {Data: []byte("SELECT 1;")},
}

func tableExists(t *testing.T, db *DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name,
	).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestMigrate(t *testing.T) {
	useMigrations(t, widgetMigrations)
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Migrate(ctx))
	assert.True(t, tableExists(t, db, "widgets"))
	assert.True(t, tableExists(t, db, "gadgets"))

	applied, pending, err := db.GetMigrationStatus(ctx)
	require.NoError(t, err)
	require.Len(t, applied, 2)
	assert.Empty(t, pending)
	assert.Equal(t, "20260101_000000", applied[0].Version)
	assert.False(t, applied[0].AppliedAt.IsZero())

	// Idempotent.
	require.NoError(t, db.Migrate(ctx))
}

func TestMigrateDown(t *testing.T) {
	useMigrations(t, fstest.MapFS{
		"20260101_000000_widgets.up.sql":   {Data: []byte("CREATE TABLE widgets (id TEXT PRIMARY KEY);")},
		"20260101_000000_widgets.down.sql": {Data: []byte("DROP TABLE widgets;")},
	})
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.MigrateDown(ctx))
	assert.False(t, tableExists(t, db, "widgets"))

	applied, pending, err := db.GetMigrationStatus(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.Len(t, pending, 1)

	// Nothing left to roll back.
	assert.NoError(t, db.MigrateDown(ctx))
}

func TestMigrateDownWithoutDownSQL(t *testing.T) {
	useMigrations(t, fstest.MapFS{
		"20260102_000000_gadgets.up.sql": {Data: []byte("CREATE TABLE gadgets (id TEXT PRIMARY KEY);")},
	})
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Migrate(ctx))
	assert.ErrorContains(t, db.MigrateDown(ctx), "has no down SQL")
}

func TestMigrateFailureStopsAtBadMigration(t *testing.T) {
	useMigrations(t, fstest.MapFS{
		"20260101_000000_ok.up.sql":  {Data: []byte("CREATE TABLE ok (id TEXT);")},
		"20260102_000000_bad.up.sql": {Data: []byte("CREATE TABLE broken (;")},
	})
	db := openTestDB(t)
	ctx := context.Background()

	err := db.Migrate(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "20260102_000000")
	assert.True(t, tableExists(t, db, "ok"))

	applied, pending, err := db.GetMigrationStatus(ctx)
	require.NoError(t, err)
	assert.Len(t, applied, 1)
	assert.Len(t, pending, 1)
}

func TestMigrateNoMigrations(t *testing.T) {
	origFS := MigrationsFS
	MigrationsFS = nil
	t.Cleanup(func() { MigrationsFS = origFS })

	db := openTestDB(t)
	assert.NoError(t, db.Migrate(context.Background()))
}

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		wantVersion string
		wantIsUp    bool
		wantOk      bool
	}{
		{"up", "20261014_090000_devices.up.sql", "20261014_090000", true, true},
		{"down", "20261014_090000_devices.down.sql", "20261014_090000", false, true},
		{"not sql", "notes.txt", "", false, false},
		{"no direction", "20261014_090000_devices.sql", "", false, false},
		{"no version", "devices.up.sql", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, isUp, ok := parseMigrationFilename(tt.filename)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.wantVersion, version)
				assert.Equal(t, tt.wantIsUp, isUp)
			}
		})
	}
}

func TestExtractMigrationName(t *testing.T) {
	assert.Equal(t, "devices", extractMigrationName("20261014_090000_devices.up.sql"))
	assert.Equal(t, "add_device_index", extractMigrationName("20261014_090000_add_device_index.down.sql"))
}
