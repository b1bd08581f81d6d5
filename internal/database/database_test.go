package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mantonx/cinemadb/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cinemadb.db")

	db, err := Open(config.DatabaseConfig{Type: "sqlite", DatabasePath: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))

	for _, table := range []string{"director", "genre", "movie"} {
		assert.True(t, db.Migrator().HasTable(table), "table %s should exist", table)
	}
	assert.NoError(t, Ping(context.Background(), db))

	// migrating an existing schema is a no-op
	assert.NoError(t, Migrate(db))
}

func TestOpenRejectsUnknownType(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Type: "oracle"})
	assert.ErrorContains(t, err, "unsupported database type")
}

func TestSQLiteDSN(t *testing.T) {
	dsn, err := sqliteDSN(":memory:")
	require.NoError(t, err)
	assert.Equal(t, ":memory:?_foreign_keys=on", dsn)

	dsn, err = sqliteDSN("file:test.db?cache=shared")
	require.NoError(t, err)
	assert.Equal(t, "file:test.db?cache=shared&_foreign_keys=on", dsn)

	_, err = sqliteDSN("")
	assert.Error(t, err)
}

func TestForeignKeySetNullOnDelete(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Type: "sqlite", DatabasePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(db))

	director := Director{Name: "Sergio Leone"}
	require.NoError(t, db.Create(&director).Error)
	movie := Movie{Title: "Once Upon a Time in the West", DirectorID: &director.ID}
	require.NoError(t, db.Create(&movie).Error)

	require.NoError(t, db.Delete(&Director{}, director.ID).Error)

	var reloaded Movie
	require.NoError(t, db.First(&reloaded, movie.ID).Error)
	assert.Nil(t, reloaded.DirectorID)
}
