package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paymentflow/backend/migrations"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add clients table", "add_clients_table"},
		{"Add-Clients-Table", "add_clients_table"},
		{"ADD_CLIENTS_TABLE", "add_clients_table"},
		{"add__clients__table", "add_clients_table"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration_NumbersSequentially(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "add clients", "clients table")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_clients.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_add_clients.down.sql"), first.DownPath)

	second, err := CreateMigration(dir, "Add Notes", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: add clients")
	assert.Contains(t, string(up), "-- clients table")

	down, err := os.ReadFile(second.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "-- Rollback: Add Notes")
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	files := fstest.MapFS{
		"000002_b.up.sql":   {},
		"000002_b.down.sql": {},
		"000001_a.up.sql":   {},
		"000001_a.down.sql": {},
		"README.md":         {},
	}

	list, err := ListMigrations(files)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint(1), list[0].Version)
	assert.Equal(t, "a", list[0].Name)
	assert.Equal(t, "000002_b.up.sql", list[1].UpPath)
}

func TestListMigrations_MissingHalf(t *testing.T) {
	files := fstest.MapFS{"000001_a.up.sql": {}}

	_, err := ListMigrations(files)
	assert.ErrorContains(t, err, "missing its up or down file")
}

func TestListMigrations_DuplicateVersion(t *testing.T) {
	files := fstest.MapFS{
		"000001_a.up.sql":   {},
		"000001_a.down.sql": {},
		"000001_b.up.sql":   {},
		"000001_b.down.sql": {},
	}

	_, err := ListMigrations(files)
	assert.ErrorContains(t, err, "duplicate migration version 1")
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	list, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	for i, mf := range list {
		assert.Equal(t, uint(i+1), mf.Version, "versions must be contiguous")
	}
}

func TestSource(t *testing.T) {
	assert.Equal(t, migrations.FS, Source(""))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_x.up.sql"), nil, 0o644))
	_, err := Source(dir).Open("000001_x.up.sql")
	assert.NoError(t, err)
}
